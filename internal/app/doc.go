// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle of a search or of
// the query server, decoupled from any specific entrypoint like a CLI.
package app
