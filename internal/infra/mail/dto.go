package mail

import "time"

type LeadAssignedEmailData struct {
	ManagerName string
	LeadID      string
	LeadName    string
	LeadPhone   string
	Source      string
	Stage       string
	Reason      string
	AssignedAt  time.Time
}

type EmailSender struct {
	From   string
	dialer Dialer
}
