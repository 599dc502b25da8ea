package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryServiceType string

const (
	InquiryServiceSoftware   InquiryServiceType = "software"
	InquiryServiceWeb        InquiryServiceType = "web"
	InquiryServiceMobile     InquiryServiceType = "mobile"
	InquiryServiceAI         InquiryServiceType = "ai"
	InquiryServiceAutomation InquiryServiceType = "automation"
	InquiryServiceAnalytics  InquiryServiceType = "analytics"
	InquiryServiceConsulting InquiryServiceType = "consulting"
	InquiryServiceOther      InquiryServiceType = "other"
)

// InquiryServiceChoice pairs a service type with its form label
type InquiryServiceChoice struct {
	Value InquiryServiceType `json:"value"`
	Label string             `json:"label"`
}

// InquiryServiceChoices lists the contact form options in display order.
var InquiryServiceChoices = []InquiryServiceChoice{
	{InquiryServiceSoftware, "Custom Software Development"},
	{InquiryServiceWeb, "Web Application Development"},
	{InquiryServiceMobile, "Mobile App Development"},
	{InquiryServiceAI, "AI & Machine Learning"},
	{InquiryServiceAutomation, "Automation Systems"},
	{InquiryServiceAnalytics, "Data Analytics"},
	{InquiryServiceConsulting, "IT Consulting"},
	{InquiryServiceOther, "Other"},
}

// Label returns the human readable name of the service type, or the raw value
// when it is not one of the known choices.
func (t InquiryServiceType) Label() string {
	for _, c := range InquiryServiceChoices {
		if c.Value == t {
			return c.Label
		}
	}
	return string(t)
}

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResponded  InquiryStatus = "responded"
	InquiryStatusClosed     InquiryStatus = "closed"
)

// ContactInquiry is a contact form submission. Visitors create it, staff
// update status and notes afterwards.
type ContactInquiry struct {
	ID          uuid.UUID          `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string             `json:"name" db:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Email       string             `json:"email" db:"email" gorm:"type:varchar(254);not null;index" validate:"required,max=254"`
	Phone       string             `json:"phone" db:"phone" gorm:"type:varchar(50);not null;default:''" validate:"max=50"`
	ServiceType InquiryServiceType `json:"serviceType" db:"service_type" gorm:"type:varchar(50);not null;default:'';index" validate:"omitempty,oneof=software web mobile ai automation analytics consulting other"`
	Subject     string             `json:"subject" db:"subject" gorm:"type:varchar(300);not null;default:''" validate:"max=300"`
	Message     string             `json:"message" db:"message" gorm:"type:text;not null" validate:"required"`
	Status      InquiryStatus      `json:"status" db:"status" gorm:"type:varchar(20);not null;index" validate:"omitempty,oneof=new in_progress responded closed"`
	AdminNotes  string             `json:"adminNotes" db:"admin_notes" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt   time.Time          `json:"updatedAt" db:"updated_at"`
}

func (i *ContactInquiry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
	return nil
}
