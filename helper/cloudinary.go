package helper

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// UploadPoster đẩy file poster lên Cloudinary, trả về secure URL
func UploadPoster(ctx context.Context, cld *cloudinary.Cloudinary, file io.Reader, publicId string) (string, error) {
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicId,
		Folder:   "cinema_booking/posters",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// DeletePoster xoá poster theo public id, lỗi chỉ log vì không chặn flow chính
func DeletePoster(ctx context.Context, cld *cloudinary.Cloudinary, publicId string) {
	if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicId}); err != nil {
		log.Printf("Cloudinary destroy %s: %v", publicId, err)
	}
}
