package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender is the patient's recorded gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// PaymentMethod is how a payment was settled.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentUPI   PaymentMethod = "UPI"
	PaymentCard  PaymentMethod = "Card"
	PaymentOther PaymentMethod = "Other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// FollowUpStatus tracks the lifecycle of a follow-up appointment.
type FollowUpStatus string

const (
	FollowUpUpcoming  FollowUpStatus = "Upcoming"
	FollowUpCompleted FollowUpStatus = "Completed"
	FollowUpPending   FollowUpStatus = "Pending"
)

func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpUpcoming, FollowUpCompleted, FollowUpPending:
		return true
	}
	return false
}

// InvestigationFile is an uploaded report or scan attached to a patient.
// StorageKey is the object key used to delete the blob from storage.
type InvestigationFile struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FileName   string             `bson:"fileName" json:"fileName"`
	URL        string             `bson:"url" json:"url"`
	StorageKey string             `bson:"storageKey" json:"storageKey"`
	MimeType   string             `bson:"mimeType" json:"mimeType"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// HomoeopathyItem is a single prescribed medicine within the treatment plan.
type HomoeopathyItem struct {
	ID                  primitive.ObjectID `bson:"_id" json:"id"`
	MedicineName        string             `bson:"medicineName" json:"medicineName"`
	Potency             string             `bson:"potency,omitempty" json:"potency,omitempty"`
	Repetition          string             `bson:"repetition,omitempty" json:"repetition,omitempty"`
	InstructionMedicine string             `bson:"instructionMedicine,omitempty" json:"instructionMedicine,omitempty"`
	InstructionPatient  string             `bson:"instructionPatient,omitempty" json:"instructionPatient,omitempty"`
	AddedAt             time.Time          `bson:"addedAt" json:"addedAt"`
}

// DietItem is a dietary instruction within the treatment plan.
type DietItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	AddedAt     time.Time          `bson:"addedAt" json:"addedAt"`
}

// Treatment groups the two prescription lists and free-form notes.
type Treatment struct {
	Homoeopathy []HomoeopathyItem `bson:"homoeopathy" json:"homoeopathy"`
	Diet        []DietItem        `bson:"diet" json:"diet"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewTreatment returns an empty treatment with both prescription lists
// initialized, the shape every patient starts with.
func NewTreatment() *Treatment {
	return &Treatment{
		Homoeopathy: []HomoeopathyItem{},
		Diet:        []DietItem{},
	}
}

// Payment is a billed amount recorded against a patient.
type Payment struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	Amount             float64            `bson:"amount" json:"amount"`
	PaymentMethod      PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	BillGenerationDate time.Time          `bson:"billGenerationDate" json:"billGenerationDate"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// FollowUp is a scheduled or completed follow-up visit. Time is a wall-clock
// string like "10:30 AM" and is kept separate from the calendar date.
type FollowUp struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Date      time.Time          `bson:"date" json:"date"`
	Time      string             `bson:"time,omitempty" json:"time,omitempty"`
	Summary   string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Status    FollowUpStatus     `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Patient is the aggregate clinic record. Sub-collections are embedded so a
// single read returns the full chart.
type Patient struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Age                int                 `bson:"age" json:"age"`
	Gender             Gender              `bson:"gender" json:"gender"`
	Address            string              `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber        string              `bson:"phoneNumber" json:"phoneNumber"`
	ConsultationDate   time.Time           `bson:"consultationDate" json:"consultationDate"`
	InvestigationFiles []InvestigationFile `bson:"investigationFiles" json:"investigationFiles"`
	Treatment          *Treatment          `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Payments           []Payment           `bson:"payments" json:"payments"`
	FollowUps          []FollowUp          `bson:"followUps" json:"followUps"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// EnsureSlices replaces nil sub-collections with empty ones so responses
// serialize as [] rather than null.
func (p *Patient) EnsureSlices() {
	if p.InvestigationFiles == nil {
		p.InvestigationFiles = []InvestigationFile{}
	}
	if p.Payments == nil {
		p.Payments = []Payment{}
	}
	if p.FollowUps == nil {
		p.FollowUps = []FollowUp{}
	}
	if p.Treatment == nil {
		p.Treatment = NewTreatment()
		return
	}
	if p.Treatment.Homoeopathy == nil {
		p.Treatment.Homoeopathy = []HomoeopathyItem{}
	}
	if p.Treatment.Diet == nil {
		p.Treatment.Diet = []DietItem{}
	}
}
