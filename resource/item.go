package resource

// Item is a stack of something the player carries
type Item struct {
	Name     string `yaml:"name" json:"name"`
	InfoText string `yaml:"info_text" json:"info_text"`
	Image    string `yaml:"image,omitempty" json:"image,omitempty"`
	Amount   int16  `yaml:"amount" json:"amount"`
}

// ChangeAmount adds delta to the carried amount
func (i *Item) ChangeAmount(delta int16) {
	i.Amount += delta
}
