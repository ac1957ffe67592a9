package models

import "time"

type CRMLeadStatus string

const (
	CRMNew           CRMLeadStatus = "new"
	CRMContacted     CRMLeadStatus = "contacted"
	CRMQualified     CRMLeadStatus = "qualified"
	CRMNegotiating   CRMLeadStatus = "negotiating"
	CRMUnderContract CRMLeadStatus = "under_contract"
	CRMClosed        CRMLeadStatus = "closed"
	CRMDead          CRMLeadStatus = "dead"
)

type CRMPriority string

const (
	PriorityHigh   CRMPriority = "high"
	PriorityMedium CRMPriority = "medium"
	PriorityLow    CRMPriority = "low"
)

// CRMLead tracks a buyer's follow-up on a purchased lead.
type CRMLead struct {
	ID              string        `json:"id"`
	PurchaseID      string        `json:"purchaseId"`
	BuyerID         string        `json:"buyerId"`
	LeadID          string        `json:"leadId"`
	Status          CRMLeadStatus `json:"status"`
	Priority        CRMPriority   `json:"priority"`
	NextFollowUp    *time.Time    `json:"nextFollowUp"`
	Notes           *string       `json:"notes"`
	LastContactDate *time.Time    `json:"lastContactDate"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type ActivityType string

const (
	ActivityCall         ActivityType = "call"
	ActivityEmail        ActivityType = "email"
	ActivitySMS          ActivityType = "sms"
	ActivityNote         ActivityType = "note"
	ActivityMeeting      ActivityType = "meeting"
	ActivityStatusChange ActivityType = "status_change"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityCall, ActivityEmail, ActivitySMS, ActivityNote, ActivityMeeting, ActivityStatusChange:
		return true
	}
	return false
}

type CRMActivity struct {
	ID           string       `json:"id"`
	CRMLeadID    string       `json:"crmLeadId"`
	ActivityType ActivityType `json:"activityType"`
	Description  string       `json:"description"`
	CreatedBy    string       `json:"createdBy"`
	CreatedAt    time.Time    `json:"createdAt"`
}
