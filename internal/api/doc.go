// Package api handles incoming HTTP requests, request validation and
// response formatting. Handlers translate HTTP concerns into calls on the
// study plan and messaging services and on the tutor, and map errors to
// status codes and safe messages. Routing itself lives in cmd/server.
package api
