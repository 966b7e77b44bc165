package testutil

import (
	"mime/multipart"
)

// NopMailer satisfies mailing.Sender without touching the network.
type NopMailer struct {
	Sent []string
}

func (m *NopMailer) Send(to, subject, htmlBody string) error {
	m.Sent = append(m.Sent, to)
	return nil
}

// NopStorage satisfies storage.AwsS3 and records uploads.
type NopStorage struct {
	Uploaded []string
}

func (s *NopStorage) UploadFile(filename string, file *multipart.FileHeader, dir string, allowedExt ...string) (string, error) {
	key := dir + "/" + filename
	s.Uploaded = append(s.Uploaded, key)
	return key, nil
}

func (s *NopStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test.local/" + objectKey
}
