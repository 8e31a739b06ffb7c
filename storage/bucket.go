package storage

import (
	"os"
	"strings"
	"time"

	"tracker/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket is one configured location for preview artifacts - either a
// writable directory or an S3 bucket (with local staging for media work).
type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string `gorm:"type:varchar(50)"`
	Endpoint      string `gorm:"type:varchar(300)"` // Custom S3 endpoint (minio, etc), empty for AWS
	AuthDetails   string // Authentication details. In case of S3 bucket - "key:secret"
	SSEEncryption string `gorm:"type:varchar(30)"`
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		if err = os.MkdirAll(b.Path, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath maps a storage path to the object key within the bucket.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC creates the S3 client for this bucket
func (b *Bucket) CreateSVC() *s3.S3 {
	auth := strings.SplitN(b.AuthDetails, ":", 2)
	creds := credentials.NewStaticCredentials(auth[0], auth[1], "")
	awsConfig := aws.NewConfig().WithRegion(b.Region).WithCredentials(creds)
	if b.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession()), awsConfig)
}

func (b *Bucket) CreateS3DownloadURI(path string, validFor time.Duration) string {
	svc := b.CreateSVC()
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	})
	uri, err := req.Presign(validFor)
	if err != nil {
		return ""
	}
	return uri
}
