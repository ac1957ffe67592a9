package pages

type option struct {
	Value, Label string
}

var roleOptions = []option{
	{"buyer", "Buyer - Purchase leads"},
	{"agent", "Agent - Submit leads"},
}
