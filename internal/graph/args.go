package graph

import (
	"net/mail"

	"shoplist-service/internal/service"
	"shoplist-service/pkg/apperr"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
)

// paginationSearchArgs is the shared argument set of every findAll-style
// field: optional limit/offset and an optional substring search.
func paginationSearchArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
		"offset": &graphql.ArgumentConfig{Type: graphql.Int},
		"search": &graphql.ArgumentConfig{Type: graphql.String},
	}
}

func paginationFromArgs(args map[string]interface{}) (service.PaginationArgs, error) {
	var pagination service.PaginationArgs
	if v, ok := args["limit"].(int); ok {
		if v <= 0 {
			return pagination, apperr.BadUserInput("limit must be a positive integer")
		}
		pagination.Limit = &v
	}
	if v, ok := args["offset"].(int); ok {
		if v < 0 {
			return pagination, apperr.BadUserInput("offset must not be negative")
		}
		pagination.Offset = &v
	}
	return pagination, nil
}

func searchFromArgs(args map[string]interface{}) service.SearchArgs {
	var search service.SearchArgs
	if v, ok := args["search"].(string); ok && v != "" {
		search.Search = &v
	}
	return search
}

// uuidArg parses the named ID argument, rejecting malformed ids before any
// service runs.
func uuidArg(args map[string]interface{}, key string) (uuid.UUID, error) {
	raw, ok := args[key].(string)
	if !ok {
		return uuid.Nil, apperr.BadUserInput(key + " must be a uuid")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.BadUserInput(key + " must be a uuid")
	}
	return id, nil
}

// inputMap extracts the named input-object argument.
func inputMap(args map[string]interface{}, key string) (map[string]interface{}, error) {
	input, ok := args[key].(map[string]interface{})
	if !ok {
		return nil, apperr.BadUserInput(key + " is required")
	}
	return input, nil
}

func stringField(input map[string]interface{}, key string) *string {
	if v, ok := input[key].(string); ok {
		return &v
	}
	return nil
}

func intField(input map[string]interface{}, key string) *int {
	if v, ok := input[key].(int); ok {
		return &v
	}
	return nil
}

func boolField(input map[string]interface{}, key string) *bool {
	if v, ok := input[key].(bool); ok {
		return &v
	}
	return nil
}

func uuidField(input map[string]interface{}, key string) (*uuid.UUID, error) {
	raw, ok := input[key].(string)
	if !ok {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.BadUserInput(key + " must be a uuid")
	}
	return &id, nil
}

func rolesField(input map[string]interface{}, key string) []string {
	raw, ok := input[key].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
