package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/storage"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// clientFor builds a storage client scoped to the authenticated user. One
// client per request; nothing is shared between users.
func (a *App) clientFor(c echo.Context) (storage.Client, error) {
	jwtUser, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	return a.storage.ForUser(c.Request().Context(), jwtUser.ID)
}

func (a *App) StorageGetFolders(c echo.Context) error {
	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	folders, err := client.Folders(c.Request().Context())
	if err != nil {
		return a.erStorage(c, err)
	}

	if folders == nil {
		folders = []storage.Entry{}
	}

	return c.JSON(http.StatusOK, folders)
}

func (a *App) StorageGetFolder(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return a.erMsg(c, http.StatusBadRequest, storage.ErrMissingPath.Error())
	}

	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	page, err := client.List(c.Request().Context(), path, c.QueryParam("newCursor"))
	if err != nil {
		return a.erStorage(c, err)
	}

	res := &FolderContentResponse{
		Data:    page.Entries,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	}
	if res.Data == nil {
		res.Data = []storage.Entry{}
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) StorageCreateFolder(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return a.erMsg(c, http.StatusBadRequest, storage.ErrMissingPath.Error())
	}

	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	if err := client.CreateFolder(c.Request().Context(), path); err != nil {
		return a.erStorage(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (a *App) StorageUploadFile(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return a.erMsg(c, http.StatusBadRequest, storage.ErrMissingPath.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return a.erMsg(c, http.StatusBadRequest, "the file field is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		a.l.Error("failed to read uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	filePath := fmt.Sprintf("/%s/%s", path, utils.SanitizeFilename(fileHeader.Filename))
	uploaded, err := client.Upload(c.Request().Context(), filePath, content)
	if err != nil {
		return a.erStorage(c, err)
	}

	return c.JSON(http.StatusCreated, &UploadResponse{
		Path:      uploaded.Path,
		PublicURL: uploaded.PublicURL,
	})
}

func (a *App) StorageGetURL(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return a.erMsg(c, http.StatusBadRequest, storage.ErrMissingPath.Error())
	}

	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	url, err := client.GetURL(c.Request().Context(), path)
	if err != nil {
		return a.erStorage(c, err)
	}

	return c.JSON(http.StatusOK, &URLResponse{PublicURL: url})
}

func (a *App) StorageDownloadFile(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return a.erMsg(c, http.StatusBadRequest, storage.ErrMissingPath.Error())
	}

	client, err := a.clientFor(c)
	if err != nil {
		return a.erStorage(c, err)
	}

	file, err := client.Download(c.Request().Context(), path)
	if err != nil {
		return a.erStorage(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", file.Name))

	contentType := utils.MIMEType(file.Name)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Blob(http.StatusOK, contentType, file.Content)
}
