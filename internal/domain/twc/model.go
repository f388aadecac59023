package twc

// OptionSelection — выбранная опция позиции в нашем словаре: внутренний ключ
// (возможно с хвостом экземпляра), подпись для UI и значение.
type OptionSelection struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// NameValue — пара поля партнёра.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LineItem — позиция заказа до маппинга.
// BreakdownFields — поля, выведенные из расчёта (ширина полотна, тип подкладки
// и т.п.); явный выбор покупателя в Options важнее.
type LineItem struct {
	ItemNumber      string            `json:"itemNumber"`
	ItemName        string            `json:"itemName"`
	Location        string            `json:"location"`
	Quantity        int               `json:"quantity"`
	Width           float64           `json:"width"`
	Drop            float64           `json:"drop"`
	Material        string            `json:"material"`
	Colour          string            `json:"colour"`
	Options         []OptionSelection `json:"options"`
	BreakdownFields []OptionSelection `json:"breakdownFields,omitempty"`
}

// OrderLineItem — позиция в том виде, в каком её принимает партнёр.
type OrderLineItem struct {
	ItemNumber        string      `json:"itemNumber"`
	ItemName          string      `json:"itemName"`
	Location          string      `json:"location"`
	Quantity          int         `json:"quantity"`
	Width             float64     `json:"width"`
	Drop              float64     `json:"drop"`
	Material          string      `json:"material"`
	Colour            string      `json:"colour"`
	CustomFieldValues []NameValue `json:"customFieldValues"`
}

// Group — одна отправка партнёру: один тип изделия, свой номер PO.
type Group struct {
	ItemNumber    string          `json:"itemNumber"`
	PurchaseOrder string          `json:"purchaseOrder"`
	Items         []OrderLineItem `json:"items"`
}

// Dropped — ключ, который не удалось сопоставить полю партнёра.
type Dropped struct {
	Item int    `json:"item"` // индекс позиции во входе
	Key  string `json:"key"`
}
