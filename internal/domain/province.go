package domain

type Province struct {
	ID           int64  `json:"id"`
	ProvinceName string `json:"province_name"`
	IsSecondary  bool   `json:"is_secondary"`
}

// TaxReduction se deriva, nunca se persiste: las provincias secundarias
// reciben el incentivo mayor.
func (p Province) TaxReduction() float64 {
	if p.IsSecondary {
		return 0.2
	}
	return 0.1
}
