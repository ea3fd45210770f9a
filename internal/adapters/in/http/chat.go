package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListMessages handles GET /api/v1/loads/:id/messages.
func (s *Server) ListMessages(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListMessagesQuery(loadID)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListMessages.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse(views))
}

// AppendMessage handles POST /api/v1/loads/:id/messages. The body is either
// JSON {"message": ...} or a multipart form with the fields "message" and
// "file".
func (s *Server) AppendMessage(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var (
		text *string
		file *commands.FileUpload
	)
	if isMultipart(c) {
		upload, closeFile, err := formFile(c)
		if err != nil {
			return err
		}
		defer closeFile()
		file = upload
		if values, ok := c.Request().MultipartForm.Value["message"]; ok && len(values) > 0 {
			text = &values[0]
		}
	} else {
		var req MessageRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		text = req.Message
	}

	cmd, err := commands.NewAppendMessageCommand(loadID, kernel.NewOrderedUUID(), authorOf(c), text, file)
	if err != nil {
		return err
	}
	msg, err := s.handlers.AppendMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse(msg, s.opts.ChatEditGrace))
}

// EditMessage handles PATCH /api/v1/loads/:id/messages/:messageId.
func (s *Server) EditMessage(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	messageID, err := uuidParam(c, "messageId")
	if err != nil {
		return err
	}
	var req MessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewEditMessageCommand(loadID, messageID, req.Message)
	if err != nil {
		return err
	}
	msg, err := s.handlers.EditMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse(msg, s.opts.ChatEditGrace))
}

// DownloadMessageFile handles GET /api/v1/loads/:id/messages/:messageId/file.
func (s *Server) DownloadMessageFile(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	messageID, err := uuidParam(c, "messageId")
	if err != nil {
		return err
	}
	query, err := queries.NewDownloadMessageFileQuery(loadID, messageID)
	if err != nil {
		return err
	}
	file, err := s.handlers.DownloadMessageFile.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return streamFile(c, file)
}
