package domain

type Service struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

var DefaultServices = []Service{
	{Title: "Classic Haircut", Price: "$35"},
	{Title: "Beard Trim & Shape", Price: "$25"},
	{Title: "Hot Towel Shave", Price: "$40"},
	{Title: "Haircut & Beard Combo", Price: "$55"},
	{Title: "Kids Cut", Price: "$25"},
	{Title: "Hair Coloring", Price: "$60"},
}
