package converter

// LineItemModel — сериализуемая форма позиции корзины, общая для всех
// бэкендов снапшота. Цена хранится десятичной строкой без потери точности.
type LineItemModel struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}
