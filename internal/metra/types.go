package metra

// Branch is a physical rental location or warehouse.
type Branch struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Type              string `json:"type"`
	ResponsibleWorker string `json:"responsible_worker,omitempty"`
	CreatedDate       string `json:"date,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// TypeLabel maps the backend's branch type vocabulary to display names.
// Unrecognized values pass through verbatim.
func (b Branch) TypeLabel() string {
	switch b.Type {
	case "main":
		return "Asosiy"
	case "general":
		return "Asosiy ombor"
	case "branch":
		return "Filial"
	case "warehouse", "store":
		return "Ombor"
	default:
		return b.Type
	}
}

// Client is a customer who rents equipment. Image fields hold
// server-relative storage paths; image_pasport is the backend's spelling.
type Client struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Phone2         string `json:"phone_additional,omitempty"`
	Address        string `json:"address,omitempty"`
	PassportSeries string `json:"passport_series,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	PNFL           string `json:"pnfl,omitempty"`
	Description    string `json:"description,omitempty"`
	WhenGiven      string `json:"when_given,omitempty"`
	BirthDay       string `json:"birthday,omitempty"`
	Image          string `json:"image,omitempty"`
	ImagePassport  string `json:"image_pasport,omitempty"`
	BranchID       *int   `json:"branch_id,omitempty"`
	BranchName     string `json:"branch_name,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

type Invoice struct {
	ID                  int             `json:"id"`
	BranchID            string          `json:"branch_id"`
	BranchName          string          `json:"branch_name"`
	ClientID            string          `json:"client_id"`
	ClientName          string          `json:"client_name"`
	Description         string          `json:"description,omitempty"`
	ResponsibleWorker   string          `json:"responsible_worker"`
	RentID              int             `json:"rent_id"`
	RentNumber          string          `json:"rent_number"`
	RentDate            string          `json:"rent_date"`
	PaymentStatus       string          `json:"payment_status"`
	FakturaNumber       string          `json:"faktura_number"`
	DiscountAmount      Amount          `json:"skidka_summa"`
	DiscountDescription string          `json:"skidka_description,omitempty"`
	DeletedAt           *string         `json:"deleted_at"`
	Date                string          `json:"date"`
	Details             []InvoiceDetail `json:"details"`
	Fines               []InvoiceFine   `json:"fines"`
}

type InvoiceDetail struct {
	ID           int    `json:"id"`
	MaterialID   int    `json:"material_id"`
	MaterialName string `json:"material_name"`
	UnitName     string `json:"unit_name"`
	Count        int    `json:"count"`
	RentPrice    Amount `json:"material_rent_price"`
	Period       string `json:"period,omitempty"`
	Sum          Amount `json:"summa"`
}

type InvoiceFine struct {
	ID          int     `json:"id"`
	Sum         float64 `json:"summa"`
	Description string  `json:"description"`
}

// Material is a rentable line item offered for an invoice, keyed by the
// underlying rental contract.
type Material struct {
	ID           int     `json:"id"`
	MaterialID   int     `json:"material_id"`
	MaterialName string  `json:"material_name"`
	UnitName     string  `json:"unit_name"`
	Count        int     `json:"count"`
	Price        float64 `json:"price"`
	Period       string  `json:"period,omitempty"`
}

type UserInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	BranchID   *int   `json:"branch_id"`
	BranchName string `json:"branch_name,omitempty"`
}

type BranchRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type ClientRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Phone2         string `json:"phone_additional,omitempty"`
	Address        string `json:"address,omitempty"`
	PassportSeries string `json:"passport_series,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	PNFL           string `json:"pnfl,omitempty"`
	Description    string `json:"description,omitempty"`
	WhenGiven      string `json:"when_given,omitempty"`
	BirthDay       string `json:"birthday,omitempty"`
	Image          string `json:"image,omitempty"`
	ImagePassport  string `json:"image_pasport,omitempty"`
	BranchID       *int   `json:"branch_id"`
}

type InvoiceCreateRequest struct {
	BranchID            int
	ClientID            int
	RentID              int
	Description         string
	DiscountAmount      *float64
	DiscountDescription string
	Details             []InvoiceDetailRequest `validate:"dive"`
	Fines               []InvoiceFineRequest
}

type InvoiceUpdateRequest struct {
	BranchID            int
	BranchName          string
	ClientID            int
	ClientName          string
	Date                string
	RentDate            string
	RentID              int
	RentNumber          string
	FakturaNumber       string
	PaymentStatus       string
	ResponsibleWorker   string
	Description         string
	DiscountAmount      *float64
	DiscountDescription string
	DeletedAt           *string
	DeleteList          []int
	Details             []InvoiceDetailRequest `validate:"dive"`
	Fines               []InvoiceFineRequest
}

type InvoiceDetailRequest struct {
	ID           *int
	MaterialID   int
	MaterialName string
	UnitName     string
	Count        int `validate:"min=0"`
	Period       *string
	Sum          *float64
	RentPrice    *float64
}

type InvoiceFineRequest struct {
	ID          *int
	Sum         float64
	Description string
}
