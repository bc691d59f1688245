// Package main is the entry point for the irismapper-admin web service,
// the login and user administration layer of IrisMapper.
package main
