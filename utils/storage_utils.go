package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage wraps an S3-compatible object service holding property images and
// user avatars. Objects are public-read; the returned URL goes straight into
// the listing row.
type Storage struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	once   sync.Once
	client *s3.S3
}

func (st *Storage) s3Client() *s3.S3 {
	st.once.Do(func() {
		sess := session.Must(session.NewSession(&aws.Config{
			Region:   aws.String(st.Region),
			Endpoint: aws.String(st.Endpoint),
			Credentials: credentials.NewStaticCredentials(
				st.AccessKey, st.SecretKey, "",
			),
		}))
		st.client = s3.New(sess)
	})
	return st.client
}

// UploadFile stores the bytes under folder/fileName and returns the public URL.
func (st *Storage) UploadFile(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	contentType := http.DetectContentType(file)

	_, err := st.s3Client().PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(st.Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return st.publicURL(filePath), nil
}

func (st *Storage) DeleteFile(fileURL string) error {
	key := st.keyFromURL(fileURL)
	if key == "" {
		return fmt.Errorf("file URL %q does not belong to bucket %s", fileURL, st.Bucket)
	}

	_, err := st.s3Client().DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(st.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file from S3: %v", err)
	}
	return nil
}

func (st *Storage) publicURL(filePath string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(st.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", st.Bucket, host, filePath)
}

func (st *Storage) keyFromURL(fileURL string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(st.Endpoint, "https://"), "http://")
	prefix := fmt.Sprintf("https://%s.%s/", st.Bucket, host)
	if !strings.HasPrefix(fileURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(fileURL, prefix)
}
