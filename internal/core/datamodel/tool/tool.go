package tool

import "time"

type Tool struct {
	ID              string    `gorm:"primaryKey;column:id"`
	Name            string    `gorm:"column:name;not null"`
	Category        string    `gorm:"column:category;not null"`
	Brand           string    `gorm:"column:brand"`
	Status          string    `gorm:"column:status;not null;index"`
	Location        string    `gorm:"column:location"`
	AcquisitionDate time.Time `gorm:"column:acquisition_date"`
	LifespanMonths  int       `gorm:"column:lifespan_months"`
	Observations    string    `gorm:"column:observations"`
	ImageURL        *string   `gorm:"column:image_url"`
	ProcedureURL    *string   `gorm:"column:procedure_url"`

	CurrentUserID     *string    `gorm:"column:current_user_id"`
	BorrowedAt        *time.Time `gorm:"column:borrowed_at"`
	EstimatedReturnAt *time.Time `gorm:"column:estimated_return_at"`

	IsMeasuringInstrument bool       `gorm:"column:is_measuring_instrument"`
	HasCertification      bool       `gorm:"column:has_certification"`
	LastCalibrationDate   *time.Time `gorm:"column:last_calibration_date"`
	NextCalibrationDate   *time.Time `gorm:"column:next_calibration_date"`
	CertificateType       *string    `gorm:"column:certificate_type"`
	CertificateRef        *string    `gorm:"column:certificate_ref"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Tool) TableName() string { return "tools" }

type LoanRecord struct {
	ID           string     `gorm:"primaryKey;column:id"`
	ToolID       string     `gorm:"column:tool_id;not null;index"`
	UserID       string     `gorm:"column:user_id;not null;index"`
	CheckoutDate time.Time  `gorm:"column:checkout_date;not null;index"`
	CheckinDate  *time.Time `gorm:"column:checkin_date;index"`
	Shift        string     `gorm:"column:shift;not null"`
	Notes        string     `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (LoanRecord) TableName() string { return "loan_records" }

type MaintenanceRecord struct {
	ID          string    `gorm:"primaryKey;column:id"`
	ToolID      string    `gorm:"column:tool_id;not null;index"`
	Date        time.Time `gorm:"column:date;not null"`
	Description string    `gorm:"column:description;not null"`
	Type        string    `gorm:"column:type;not null"`
	Company     string    `gorm:"column:company;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (MaintenanceRecord) TableName() string { return "maintenance_records" }

type DecommissionRecord struct {
	ToolID            string    `gorm:"primaryKey;column:tool_id"`
	Date              time.Time `gorm:"column:date;not null"`
	Reason            string    `gorm:"column:reason;not null"`
	Description       string    `gorm:"column:description;not null"`
	EvidenceImageURL  *string   `gorm:"column:evidence_image_url"`
	ResponsibleUserID string    `gorm:"column:responsible_user_id;not null"`
	ReplacementReason string    `gorm:"column:replacement_reason;not null"`
	ReplacementStatus string    `gorm:"column:replacement_status;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (DecommissionRecord) TableName() string { return "decommission_records" }
