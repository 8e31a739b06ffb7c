package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"tracker/config"
	"tracker/db"
)

// StorageAPI is what the artifact store and the ingestion pipeline use to
// read and write preview bytes. Paths are relative to the bucket root,
// e.g. "thumbnails/b21/<id>.png". All file-producing operations work on a
// local path first (GetFullPath); UpdateRemoteFile pushes the result to
// remote storage when the bucket is remote.
type StorageAPI interface {
	GetFullPath(path string) string
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	Exists(path string) bool
	EnsureLocalFile(path string) error
	ReleaseLocalFile(path string)
	UpdateRemoteFile(path, mimeType string) error
	DeleteRemoteFile(path string) error
	GetBucket() *Bucket
}

var (
	cachedStorage []StorageAPI
)

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.PREVIEW_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "previews",
			StorageType: StorageTypeFile,
			Path:        config.PREVIEW_BUCKET_DIR,
		}
		if err = bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	for _, bucket := range buckets {
		if bucket.StorageType == StorageTypeFile {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		} else if bucket.StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
		}
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}
