// Package database handles database connections for the catalog service.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. A
// sqlite driver is supported for local development and tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. It is
// agnostic to the catalog schema; migrations are owned by the migrate command.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
