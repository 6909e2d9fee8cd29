package mail

type HireEmailData struct {
	FullName    string
	Role        string
	Source      string
	HireDate    string
	Touchpoints string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
