package graph

import "github.com/graphql-go/graphql"

func (b *schemaBuilder) buildInputs() {
	b.signupInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignupInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"fullName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.loginInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.createItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"quantityUnits": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.updateItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"quantityUnits": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.createListInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateListInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.updateListInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateListInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.createListItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateListItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
			"completed": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
			"listId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"itemId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	b.updateListItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateListItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"completed": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"listId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"itemId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	b.updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"fullName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"roles":    &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(b.validRoles))},
			"isActive": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
}
