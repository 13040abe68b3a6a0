// Package errors provides the structured error type shared by every layer of
// rpg-sheets.
//
// Errors carry a Code, a user-facing message, an optional cause and free-form
// metadata:
//
//	err := errors.NotFound("character not found").
//	    WithMeta("category", "enemy").
//	    WithMeta("name", "goblin")
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load character")
//	}
//
// Layer guidelines:
//
// Repositories return NotFound and InvalidArgument and wrap storage failures
// (which become Internal).
//
// The battle engine never surfaces NotFound for a missing record. A record
// that disappears mid-battle is skipped, and malformed numeric input is read
// as 0.
//
// Orchestrators validate inputs with a ValidationBuilder and wrap repository
// errors with business context.
//
// Handlers convert to gRPC with ToGRPCError; metadata travels as an
// ErrorInfo detail.
package errors
