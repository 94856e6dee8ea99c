package service

// Deterministic fixtures loaded by SeedService. The first user carries the
// elevated roles and owns every seeded item and list.

var seedUsers = []SignupInput{
	{FullName: "Alice Johnson", Email: "alice@example.com", Password: "123456"},
	{FullName: "Bob Smith", Email: "bob@example.com", Password: "123456"},
	{FullName: "Carol Davis", Email: "carol@example.com", Password: "123456"},
}

var seedAdminRoles = []string{"admin", "superUser", "user"}

var seedItems = []CreateItemInput{
	{Name: "Milk", QuantityUnits: strPtr("l")},
	{Name: "Eggs", QuantityUnits: strPtr("dozen")},
	{Name: "Bread", QuantityUnits: strPtr("units")},
	{Name: "Rice", QuantityUnits: strPtr("kg")},
	{Name: "Chicken breast", QuantityUnits: strPtr("kg")},
	{Name: "Tomatoes", QuantityUnits: strPtr("kg")},
	{Name: "Onions", QuantityUnits: strPtr("kg")},
	{Name: "Olive oil", QuantityUnits: strPtr("ml")},
	{Name: "Butter", QuantityUnits: strPtr("g")},
	{Name: "Cheese", QuantityUnits: strPtr("g")},
	{Name: "Apples", QuantityUnits: strPtr("kg")},
	{Name: "Bananas", QuantityUnits: strPtr("kg")},
	{Name: "Coffee", QuantityUnits: strPtr("g")},
	{Name: "Sugar", QuantityUnits: strPtr("kg")},
	{Name: "Salt", QuantityUnits: strPtr("g")},
	{Name: "Toilet paper", QuantityUnits: nil},
	{Name: "Dish soap", QuantityUnits: nil},
	{Name: "Sponges", QuantityUnits: nil},
	{Name: "Paper towels", QuantityUnits: nil},
	{Name: "Trash bags", QuantityUnits: nil},
}

var seedLists = []CreateListInput{
	{Name: "Groceries"},
}

func strPtr(s string) *string {
	return &s
}
