package graph

import (
	"shoplist-service/internal/model"
	"shoplist-service/internal/service"
	"shoplist-service/pkg/apperr"
	"shoplist-service/prometheus"

	"github.com/graphql-go/graphql"
)

// Services groups the domain services the schema resolves against. The
// composition root in cmd/main.go constructs them and passes them down;
// the schema holds no other state.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UsersService
	Items     *service.ItemsService
	Lists     *service.ListsService
	ListItems *service.ListItemsService
	Seed      *service.SeedService
}

type schemaBuilder struct {
	services Services

	validRoles   *graphql.Enum
	user         *graphql.Object
	item         *graphql.Object
	list         *graphql.Object
	listItem     *graphql.Object
	authResponse *graphql.Object

	signupInput         *graphql.InputObject
	loginInput          *graphql.InputObject
	createItemInput     *graphql.InputObject
	updateItemInput     *graphql.InputObject
	createListInput     *graphql.InputObject
	updateListInput     *graphql.InputObject
	createListItemInput *graphql.InputObject
	updateListItemInput *graphql.InputObject
	updateUserInput     *graphql.InputObject
}

// NewSchema builds the executable GraphQL schema over the given services.
func NewSchema(services Services) (graphql.Schema, error) {
	b := &schemaBuilder{services: services}
	b.buildTypes()
	b.buildInputs()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryRoot(),
		Mutation: b.mutationRoot(),
	})
}

func (b *schemaBuilder) queryRoot() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"items": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.item))),
				Args: paginationSearchArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("items")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					pagination, err := paginationFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return b.services.Items.FindAll(p.Context, user, pagination, searchFromArgs(p.Args))
				},
			},
			"item": &graphql.Field{
				Type: graphql.NewNonNull(b.item),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("item")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Items.FindOne(p.Context, id, user)
				},
			},
			"lists": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.list))),
				Args: paginationSearchArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("lists")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					pagination, err := paginationFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return b.services.Lists.FindAll(p.Context, user, pagination, searchFromArgs(p.Args))
				},
			},
			"list": &graphql.Field{
				Type: graphql.NewNonNull(b.list),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("list")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Lists.FindOne(p.Context, id, user)
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.user))),
				Args: func() graphql.FieldConfigArgument {
					args := paginationSearchArgs()
					args["roles"] = &graphql.ArgumentConfig{
						Type:         graphql.NewList(graphql.NewNonNull(b.validRoles)),
						DefaultValue: []interface{}{},
					}
					return args
				}(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("users")
					if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin, model.RoleSuperUser)); err != nil {
						return nil, err
					}
					pagination, err := paginationFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return b.services.Users.FindAll(p.Context, rolesField(p.Args, "roles"), pagination, searchFromArgs(p.Args))
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(b.user),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("user")
					if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin, model.RoleSuperUser)); err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Users.FindOneByID(p.Context, id)
				},
			},
			"revalidate": &graphql.Field{
				Type: graphql.NewNonNull(b.authResponse),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("revalidate")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					return b.services.Auth.RevalidateToken(p.Context, user)
				},
			},
		},
	})
}

func (b *schemaBuilder) mutationRoot() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(b.authResponse),
				Args: graphql.FieldConfigArgument{
					"signupInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.signupInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("signup")
					input, err := inputMap(p.Args, "signupInput")
					if err != nil {
						return nil, err
					}
					signup, err := signupFromInput(input)
					if err != nil {
						return nil, err
					}
					return b.services.Auth.Signup(p.Context, signup)
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(b.authResponse),
				Args: graphql.FieldConfigArgument{
					"loginInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("login")
					input, err := inputMap(p.Args, "loginInput")
					if err != nil {
						return nil, err
					}
					email := stringField(input, "email")
					password := stringField(input, "password")
					if email == nil || password == nil {
						return nil, apperr.BadUserInput("email and password are required")
					}
					return b.services.Auth.Login(p.Context, service.LoginInput{
						Email:    *email,
						Password: *password,
					})
				},
			},
			"createItem": &graphql.Field{
				Type: graphql.NewNonNull(b.item),
				Args: graphql.FieldConfigArgument{
					"createItemInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createItemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("createItem")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "createItemInput")
					if err != nil {
						return nil, err
					}
					name := stringField(input, "name")
					if name == nil || *name == "" {
						return nil, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "name must not be empty", Field: "name"}
					}
					return b.services.Items.Create(p.Context, service.CreateItemInput{
						Name:          *name,
						QuantityUnits: stringField(input, "quantityUnits"),
					}, user)
				},
			},
			"updateItem": &graphql.Field{
				Type: graphql.NewNonNull(b.item),
				Args: graphql.FieldConfigArgument{
					"updateItemInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updateItemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("updateItem")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "updateItemInput")
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(input, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Items.Update(p.Context, service.UpdateItemInput{
						ID:            id,
						Name:          stringField(input, "name"),
						QuantityUnits: stringField(input, "quantityUnits"),
					}, user)
				},
			},
			"removeItem": &graphql.Field{
				Type: graphql.NewNonNull(b.item),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("removeItem")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Items.Remove(p.Context, id, user)
				},
			},
			"createList": &graphql.Field{
				Type: graphql.NewNonNull(b.list),
				Args: graphql.FieldConfigArgument{
					"createListInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createListInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("createList")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "createListInput")
					if err != nil {
						return nil, err
					}
					name := stringField(input, "name")
					if name == nil || *name == "" {
						return nil, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "name must not be empty", Field: "name"}
					}
					return b.services.Lists.Create(p.Context, service.CreateListInput{Name: *name}, user)
				},
			},
			"updateList": &graphql.Field{
				Type: graphql.NewNonNull(b.list),
				Args: graphql.FieldConfigArgument{
					"updateListInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updateListInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("updateList")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "updateListInput")
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(input, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Lists.Update(p.Context, service.UpdateListInput{
						ID:   id,
						Name: stringField(input, "name"),
					}, user)
				},
			},
			"removeList": &graphql.Field{
				Type: graphql.NewNonNull(b.list),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("removeList")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Lists.Remove(p.Context, id, user)
				},
			},
			"createListItem": &graphql.Field{
				Type: graphql.NewNonNull(b.listItem),
				Args: graphql.FieldConfigArgument{
					"createListItemInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createListItemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("createListItem")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "createListItemInput")
					if err != nil {
						return nil, err
					}
					listID, err := uuidArg(input, "listId")
					if err != nil {
						return nil, err
					}
					itemID, err := uuidArg(input, "itemId")
					if err != nil {
						return nil, err
					}
					// Ownership check happens here, on the parents: the
					// join row itself carries no owner.
					if _, err := b.services.Lists.FindOne(p.Context, listID, user); err != nil {
						return nil, err
					}
					if _, err := b.services.Items.FindOne(p.Context, itemID, user); err != nil {
						return nil, err
					}
					create := service.CreateListItemInput{ListID: listID, ItemID: itemID}
					if quantity := intField(input, "quantity"); quantity != nil {
						if *quantity < 0 {
							return nil, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "quantity must not be negative", Field: "quantity"}
						}
						create.Quantity = *quantity
					}
					if completed := boolField(input, "completed"); completed != nil {
						create.Completed = *completed
					}
					return b.services.ListItems.Create(p.Context, create)
				},
			},
			"updateListItem": &graphql.Field{
				Type: graphql.NewNonNull(b.listItem),
				Args: graphql.FieldConfigArgument{
					"updateListItemInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updateListItemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("updateListItem")
					user, err := allow(p.Context, Authenticated)
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "updateListItemInput")
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(input, "id")
					if err != nil {
						return nil, err
					}
					// The join row carries no owner of its own; the caller
					// must own the list it currently sits on. A miss reads
					// as the row not existing.
					entry, err := b.services.ListItems.FindOne(p.Context, id)
					if err != nil {
						return nil, err
					}
					if _, err := b.services.Lists.FindOne(p.Context, entry.ListID, user); err != nil {
						if apperr.Is(err, apperr.CodeNotFound) {
							return nil, apperr.NotFound("list item with id " + id.String() + " not found")
						}
						return nil, err
					}
					update := service.UpdateListItemInput{ID: id}
					if update.Quantity = intField(input, "quantity"); update.Quantity != nil && *update.Quantity < 0 {
						return nil, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "quantity must not be negative", Field: "quantity"}
					}
					update.Completed = boolField(input, "completed")
					if update.ListID, err = uuidField(input, "listId"); err != nil {
						return nil, err
					}
					if update.ItemID, err = uuidField(input, "itemId"); err != nil {
						return nil, err
					}
					// Re-pointing a foreign key requires owning the new target.
					if update.ListID != nil {
						if _, err := b.services.Lists.FindOne(p.Context, *update.ListID, user); err != nil {
							return nil, err
						}
					}
					if update.ItemID != nil {
						if _, err := b.services.Items.FindOne(p.Context, *update.ItemID, user); err != nil {
							return nil, err
						}
					}
					return b.services.ListItems.Update(p.Context, update)
				},
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(b.user),
				Args: graphql.FieldConfigArgument{
					"updateUserInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updateUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("updateUser")
					admin, err := allow(p.Context, Authenticated, Role(model.RoleAdmin))
					if err != nil {
						return nil, err
					}
					input, err := inputMap(p.Args, "updateUserInput")
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(input, "id")
					if err != nil {
						return nil, err
					}
					if email := stringField(input, "email"); email != nil && !validEmail(*email) {
						return nil, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "email must be a valid address", Field: "email"}
					}
					return b.services.Users.Update(p.Context, service.UpdateUserInput{
						ID:       id,
						FullName: stringField(input, "fullName"),
						Email:    stringField(input, "email"),
						Password: stringField(input, "password"),
						Roles:    rolesField(input, "roles"),
						IsActive: boolField(input, "isActive"),
					}, admin)
				},
			},
			"blockUser": &graphql.Field{
				Type: graphql.NewNonNull(b.user),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("blockUser")
					admin, err := allow(p.Context, Authenticated, Role(model.RoleAdmin))
					if err != nil {
						return nil, err
					}
					id, err := uuidArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return b.services.Users.Block(p.Context, id, admin)
				},
			},
			"executeSeed": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Boolean),
				Description: "Wipes the database and loads fixtures. Refused in production.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prometheus.RecordOperation("executeSeed")
					return b.services.Seed.Execute(p.Context)
				},
			},
		},
	})
}

func signupFromInput(input map[string]interface{}) (service.SignupInput, error) {
	fullName := stringField(input, "fullName")
	email := stringField(input, "email")
	password := stringField(input, "password")

	if fullName == nil || *fullName == "" {
		return service.SignupInput{}, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "fullName must not be empty", Field: "fullName"}
	}
	if email == nil || !validEmail(*email) {
		return service.SignupInput{}, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "email must be a valid address", Field: "email"}
	}
	if password == nil || len(*password) < 6 {
		return service.SignupInput{}, &apperr.Error{Code: apperr.CodeBadUserInput, Message: "password must be at least 6 characters", Field: "password"}
	}

	return service.SignupInput{FullName: *fullName, Email: *email, Password: *password}, nil
}
