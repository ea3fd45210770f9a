package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// maxUploadMemory bounds the multipart parts kept in memory; larger parts
// spill to temporary files.
const maxUploadMemory = 32 << 20

// AttachDocument handles PUT /api/v1/loads/:id/documents/:slot. The file is
// sent as the multipart field "file".
func (s *Server) AttachDocument(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	slot, err := load.ParseDocumentSlot(c.Param("slot"))
	if err != nil {
		return err
	}

	upload, closeFile, err := formFile(c)
	if err != nil {
		return err
	}
	if upload == nil {
		return errs.NewValueIsRequiredError("file")
	}
	defer closeFile()

	cmd, err := commands.NewAttachDocumentCommand(loadID, slot, *upload)
	if err != nil {
		return err
	}
	ref, err := s.handlers.AttachDocument.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileResponse(&ref))
}

// DownloadDocument handles GET /api/v1/loads/:id/documents/:slot.
func (s *Server) DownloadDocument(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	slot, err := load.ParseDocumentSlot(c.Param("slot"))
	if err != nil {
		return err
	}

	query, err := queries.NewDownloadDocumentQuery(loadID, slot)
	if err != nil {
		return err
	}
	file, err := s.handlers.DownloadDocument.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return streamFile(c, file)
}

// formFile returns the multipart field "file", or nil when the request
// carries none. The returned func closes the opened part.
func formFile(c echo.Context) (*commands.FileUpload, func(), error) {
	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file part")
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid file part")
	}
	return &commands.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Content:     f,
		Size:        header.Size,
	}, func() { _ = f.Close() }, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// streamFile copies a stored file to the response and closes it.
func streamFile(c echo.Context, file queries.FileDownload) error {
	defer file.Content.Close()

	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": file.File.Name()}))
	if file.File.Size() >= 0 {
		h.Set(echo.HeaderContentLength, strconv.FormatInt(file.File.Size(), 10))
	}
	contentType := file.File.ContentType()
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, file.Content)
}
