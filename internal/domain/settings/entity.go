package settings

// CompanySettings is the singleton company profile stamped on documents.
type CompanySettings struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	Address             string  `json:"address"`
	City                string  `json:"city"`
	TaxID               string  `json:"taxId,omitempty"`
	Logo                string  `json:"logo,omitempty"`
	BankName            string  `json:"bankName,omitempty"`
	AccountNumber       string  `json:"accountNumber,omitempty"`
	DefaultTaxRate      float64 `json:"defaultTaxRate"`
	DefaultPaymentTerms string  `json:"defaultPaymentTerms,omitempty"`
}

type Patch struct {
	Name                *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Email               *string  `json:"email" validate:"omitempty,email"`
	Phone               *string  `json:"phone" validate:"omitempty,max=50"`
	Address             *string  `json:"address" validate:"omitempty,max=500"`
	City                *string  `json:"city" validate:"omitempty,max=100"`
	TaxID               *string  `json:"taxId" validate:"omitempty,max=50"`
	Logo                *string  `json:"logo"`
	BankName            *string  `json:"bankName" validate:"omitempty,max=200"`
	AccountNumber       *string  `json:"accountNumber" validate:"omitempty,max=64"`
	DefaultTaxRate      *float64 `json:"defaultTaxRate" validate:"omitempty,gte=0,lte=100"`
	DefaultPaymentTerms *string  `json:"defaultPaymentTerms"`
}

func (p Patch) Apply(s *CompanySettings) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.Name, p.Name)
	set(&s.Email, p.Email)
	set(&s.Phone, p.Phone)
	set(&s.Address, p.Address)
	set(&s.City, p.City)
	set(&s.TaxID, p.TaxID)
	set(&s.Logo, p.Logo)
	set(&s.BankName, p.BankName)
	set(&s.AccountNumber, p.AccountNumber)
	set(&s.DefaultPaymentTerms, p.DefaultPaymentTerms)
	if p.DefaultTaxRate != nil {
		s.DefaultTaxRate = *p.DefaultTaxRate
	}
}
