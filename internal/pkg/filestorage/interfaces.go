package filestorage

import "mime/multipart"

// BucketName is the logical bucket holding academy gallery photos. Objects
// are addressed as {academyID}/{generatedFileName}.
const BucketName = "academy-photos"

// ObjectStorage defines the storage operations the photo lifecycle needs
type ObjectStorage interface {
	// SaveFileWithPath stores an uploaded file under a subdirectory and
	// returns a publicly resolvable URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored object by its bucket-relative path
	DeleteFile(filePath string) error

	// PathFromURL derives the bucket-relative path from a public URL
	PathFromURL(fileURL string) string
}
