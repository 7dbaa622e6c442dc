package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeWelcome:        {file: "welcome_email.html", subject: "ECNC 工时账本 - 欢迎注册"},
	domain.MailTypeResetPassword:  {file: "reset_password_otp_email.html", subject: "ECNC 工时账本 - 重置密码"},
	domain.MailTypeMonthlySummary: {file: "monthly_summary_email.html", subject: "ECNC 工时账本 - 月度汇总"},
}

// decodeMailData 把消息中的 data 解析为对应类型，保证模板字段与投递方一致
func decodeMailData(mailMessage *domain.MailMessage, raw json.RawMessage) error {
	var data any
	switch mailMessage.Type {
	case domain.MailTypeWelcome:
		data = &domain.WelcomeMailData{}
	case domain.MailTypeResetPassword:
		data = &domain.ResetPasswordMailData{}
	case domain.MailTypeMonthlySummary:
		data = &domain.MonthlySummaryMailData{}
	default:
		return fmt.Errorf("不支持的邮件类型 %q", mailMessage.Type)
	}

	if err := json.Unmarshal(raw, data); err != nil {
		return err
	}
	mailMessage.Data = data
	return nil
}

// buildMessage 根据队列中的消息生成待发送的邮件
func buildMessage(from, templatesDir string, body []byte) (*mail.Msg, error) {
	var envelope struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	mailMessage := domain.MailMessage{Type: envelope.Type, To: envelope.To}
	if err := decodeMailData(&mailMessage, envelope.Data); err != nil {
		return nil, err
	}

	tmplInfo := mailTemplates[mailMessage.Type]
	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, tmplInfo.file))
	if err != nil {
		return nil, fmt.Errorf("无法解析邮件模板: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	m.Subject(tmplInfo.subject)

	return m, nil
}
