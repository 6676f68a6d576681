// Package jwt signs and verifies the HS512 tokens issued to users and keeps
// verified claims in a request context.
package jwt
