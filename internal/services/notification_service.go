// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/models"
)

// ListNotifier tells commercial intelligence that a list is ready for review.
type ListNotifier interface {
	SendListSubmitted(ctx context.Context, to string, list *models.InspectionList) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	config   config.EmailConfig
	sendMail sendMailFunc
}

type EmailTemplate struct {
	Subject string
	Body    string
}

var listSubmittedTemplate = template.Must(template.New("list_submitted").Parse(`
<!DOCTYPE html>
<html>
<body>
	<p>Olá Inteligência Comercial,</p>
	<p>Uma nova lista de leitura de embalagens foi concluída e está pronta para análise.</p>
	<h3>DADOS DA LISTA</h3>
	<ul>
		<li>NOME: {{.Name}}</li>
		<li>ESTABELECIMENTO: {{.Establishment}}</li>
		<li>CIDADE: {{.City}}</li>
		<li>INSPETOR: {{.InspectorName}}</li>
		<li>ITENS COLETADOS: {{.ItemCount}}</li>
		<li>NOVOS PROSPECTS: {{.NewProspects}}</li>
	</ul>
	<p>Atenciosamente,<br>Equipe de Campo - PackScan Pro</p>
</body>
</html>`))

func NewNotificationService(cfg config.EmailConfig) *NotificationService {
	return &NotificationService{config: cfg, sendMail: smtp.SendMail}
}

func (s *NotificationService) SendListSubmitted(ctx context.Context, to string, list *models.InspectionList) error {
	email, err := RenderListSubmitted(list)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.sendEmail(ctx, to, email)
}

// RenderListSubmitted builds the summary mail of a list handed over for review.
func RenderListSubmitted(list *models.InspectionList) (EmailTemplate, error) {
	newProspects := 0
	for _, entry := range list.Entries {
		if entry.IsNewProspect {
			newProspects++
		}
	}

	data := map[string]interface{}{
		"Name":          list.Name,
		"Establishment": list.Establishment,
		"City":          list.City,
		"InspectorName": list.InspectorName,
		"ItemCount":     len(list.Entries),
		"NewProspects":  newProspects,
	}

	var buf bytes.Buffer
	if err := listSubmittedTemplate.Execute(&buf, data); err != nil {
		return EmailTemplate{}, err
	}

	return EmailTemplate{
		Subject: "NOVA LEITURA PACKSCAN PRO: " + list.Name,
		Body:    buf.String(),
	}, nil
}

func (s *NotificationService) sendEmail(ctx context.Context, to string, email EmailTemplate) error {
	if s.config.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": email.Subject}).Info("SMTP not configured, email not sent")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, email.Subject, email.Body))

	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)
	return s.sendMail(addr, auth, s.config.FromEmail, []string{to}, msg)
}
