package common

import (
	"mime/multipart"
	"net/http"
	"sync"

	"prompt_market/internal/pkg/uploader"
	"prompt_market/pkg/response"

	"github.com/gin-gonic/gin"
)

// UploadFile uploads avatars or prompt thumbnails to OSS (batch capable).
// @Summary Upload files to OSS
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} response.Response{data=[]string} "URLs"
// @Router /upload [post]
func UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "No files uploaded")
		return
	}

	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Uploader not initialized")
		return
	}

	// Index-addressed result slice preserves request order under concurrency.
	urls := make([]string, len(files))

	var wg sync.WaitGroup
	var errOnce sync.Once
	var uploadErr error

	// Cap concurrent uploads at 5.
	sem := make(chan struct{}, 5)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f *multipart.FileHeader) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if uploadErr != nil {
				return
			}

			url, err := uploader.GlobalUploader.UploadFile(f)
			if err != nil {
				errOnce.Do(func() {
					uploadErr = err
				})
				return
			}

			urls[index] = url
		}(i, file)
	}

	wg.Wait()

	if uploadErr != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+uploadErr.Error())
		return
	}

	response.Success(c, urls)
}
