// Package catalog implements the office service page catalog.
//
// Records are keyed hierarchically: state → office → area served → service.
// The composite (state_office_token, area_served_token, service_token) key is
// unique across the catalog; this is the central invariant, enforced by a
// composite unique index at the storage layer.
//
// # Components
//
//   - models: The PageRecord entity and composite Key with token validation.
//   - Store: The logical persistence contract (lookup by full/partial key,
//     listings, upsert) implemented on GORM.
//   - Resolver: Parses path segments into structured keys and resolves
//     partial keys, surfacing AmbiguousKeyError when more than one office
//     matches instead of silently picking one.
//   - Service: The query operations the HTTP layer consumes.
//   - Handler: Fiber routes with the stable error-to-status mapping.
//
// # HTTP Endpoints
//
//   - GET  /offices : List every state-office token.
//   - POST /offices : Create a single page record.
//   - GET  /offices/:state/:office/sitemap : Sitemap (area, service) pairs.
//   - GET  /offices/:state/:office/areas/:area/services : Area listing.
//   - GET  /offices/:state/:office/areas/:area/services/:service/page : Page.
//   - GET  /offices/:state/areas/:area/services/:service/page : Cross-office
//     partial-key lookup.
package catalog
