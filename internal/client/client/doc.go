// Package client talks to the remote employee board over GraphQL.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer;
// GraphQLClient implements it on top of github.com/machinebox/graphql with a
// per-request timeout.
//
// # Error Handling
//
// Every failure is returned as a *RemoteError carrying the operation name
// and a message fit for the user. Transport failures additionally match
// ErrUnavailable with errors.Is; a null getEmployee matches ErrNotFound.
package client
