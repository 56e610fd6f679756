// Package users manages API credentials for basic authentication.
//
// Passwords are stored as bcrypt hashes. The Store implements the auth
// middleware's Verifier contract, and the user CLI commands use it for
// credential administration (create, list, delete).
package users
