package graph

import (
	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"

	"github.com/graphql-go/graphql"
)

// buildTypes constructs the object types. The graph is cyclic (User owns
// Items, Items point back at their User), so objects are created empty and
// fields are attached afterwards.
func (b *schemaBuilder) buildTypes() {
	b.validRoles = graphql.NewEnum(graphql.EnumConfig{
		Name: "ValidRoles",
		Values: graphql.EnumValueConfigMap{
			"user":      &graphql.EnumValueConfig{Value: model.RoleUser},
			"admin":     &graphql.EnumValueConfig{Value: model.RoleAdmin},
			"superUser": &graphql.EnumValueConfig{Value: model.RoleSuperUser},
		},
	})

	b.user = graphql.NewObject(graphql.ObjectConfig{Name: "User", Fields: graphql.Fields{}})
	b.item = graphql.NewObject(graphql.ObjectConfig{Name: "Item", Fields: graphql.Fields{}})
	b.list = graphql.NewObject(graphql.ObjectConfig{Name: "List", Fields: graphql.Fields{}})
	b.listItem = graphql.NewObject(graphql.ObjectConfig{Name: "ListItem", Fields: graphql.Fields{}})

	b.authResponse = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthResponse",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(b.user)},
		},
	})

	b.buildUserFields()
	b.buildItemFields()
	b.buildListFields()
	b.buildListItemFields()
}

func (b *schemaBuilder) buildUserFields() {
	b.user.AddFieldConfig("id", &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return user.ID.String(), nil
		},
	})
	b.user.AddFieldConfig("fullName", &graphql.Field{Type: graphql.NewNonNull(graphql.String)})
	b.user.AddFieldConfig("email", &graphql.Field{Type: graphql.NewNonNull(graphql.String)})
	b.user.AddFieldConfig("roles", &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))})
	b.user.AddFieldConfig("isActive", &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)})

	// Self-referencing admin link, resolved by id lookup only when asked.
	b.user.AddFieldConfig("lastUpdatedBy", &graphql.Field{
		Type: b.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			if user.LastUpdatedByID == nil {
				return nil, nil
			}
			return b.services.Users.FindOneByID(p.Context, *user.LastUpdatedByID)
		},
	})

	// Aggregates over another user's data are admin-only even where the
	// parent operation allowed more.
	b.user.AddFieldConfig("itemCount", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin)); err != nil {
				return nil, err
			}
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Items.CountByUser(p.Context, user)
		},
	})
	b.user.AddFieldConfig("listCount", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin)); err != nil {
				return nil, err
			}
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Lists.CountByUser(p.Context, user)
		},
	})
	b.user.AddFieldConfig("items", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.item))),
		Args: paginationSearchArgs(),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin)); err != nil {
				return nil, err
			}
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			pagination, err := paginationFromArgs(p.Args)
			if err != nil {
				return nil, err
			}
			return b.services.Items.FindAll(p.Context, user, pagination, searchFromArgs(p.Args))
		},
	})
	b.user.AddFieldConfig("lists", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.list))),
		Args: paginationSearchArgs(),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if _, err := allow(p.Context, Authenticated, Role(model.RoleAdmin)); err != nil {
				return nil, err
			}
			user, err := userFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			pagination, err := paginationFromArgs(p.Args)
			if err != nil {
				return nil, err
			}
			return b.services.Lists.FindAll(p.Context, user, pagination, searchFromArgs(p.Args))
		},
	})
}

func (b *schemaBuilder) buildItemFields() {
	b.item.AddFieldConfig("id", &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item, err := itemFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return item.ID.String(), nil
		},
	})
	b.item.AddFieldConfig("name", &graphql.Field{Type: graphql.NewNonNull(graphql.String)})
	b.item.AddFieldConfig("quantityUnits", &graphql.Field{Type: graphql.String})
	b.item.AddFieldConfig("user", &graphql.Field{
		Type: graphql.NewNonNull(b.user),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item, err := itemFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Users.FindOneByID(p.Context, item.UserID)
		},
	})
}

func (b *schemaBuilder) buildListFields() {
	b.list.AddFieldConfig("id", &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := listFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return list.ID.String(), nil
		},
	})
	b.list.AddFieldConfig("name", &graphql.Field{Type: graphql.NewNonNull(graphql.String)})
	b.list.AddFieldConfig("user", &graphql.Field{
		Type: graphql.NewNonNull(b.user),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := listFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Users.FindOneByID(p.Context, list.UserID)
		},
	})
	b.list.AddFieldConfig("totalItems", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := listFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.ListItems.CountByList(p.Context, list)
		},
	})
	b.list.AddFieldConfig("items", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.listItem))),
		Args: paginationSearchArgs(),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := listFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			pagination, err := paginationFromArgs(p.Args)
			if err != nil {
				return nil, err
			}
			return b.services.ListItems.FindAll(p.Context, list, pagination, searchFromArgs(p.Args))
		},
	})
}

func (b *schemaBuilder) buildListItemFields() {
	b.listItem.AddFieldConfig("id", &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			listItem, err := listItemFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return listItem.ID.String(), nil
		},
	})
	b.listItem.AddFieldConfig("quantity", &graphql.Field{Type: graphql.NewNonNull(graphql.Int)})
	b.listItem.AddFieldConfig("completed", &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)})

	// Ownership of both relations was established when the caller loaded
	// the parent row, so these resolve by plain id lookup.
	b.listItem.AddFieldConfig("list", &graphql.Field{
		Type: graphql.NewNonNull(b.list),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			listItem, err := listItemFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Lists.FindByID(p.Context, listItem.ListID)
		},
	})
	b.listItem.AddFieldConfig("item", &graphql.Field{
		Type: graphql.NewNonNull(b.item),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			listItem, err := listItemFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return b.services.Items.FindByID(p.Context, listItem.ItemID)
		},
	})
}

func userFromSource(source interface{}) (*model.User, error) {
	switch v := source.(type) {
	case *model.User:
		return v, nil
	case model.User:
		return &v, nil
	}
	return nil, apperr.Internal()
}

func itemFromSource(source interface{}) (*model.Item, error) {
	switch v := source.(type) {
	case *model.Item:
		return v, nil
	case model.Item:
		return &v, nil
	}
	return nil, apperr.Internal()
}

func listFromSource(source interface{}) (*model.List, error) {
	switch v := source.(type) {
	case *model.List:
		return v, nil
	case model.List:
		return &v, nil
	}
	return nil, apperr.Internal()
}

func listItemFromSource(source interface{}) (*model.ListItem, error) {
	switch v := source.(type) {
	case *model.ListItem:
		return v, nil
	case model.ListItem:
		return &v, nil
	}
	return nil, apperr.Internal()
}
