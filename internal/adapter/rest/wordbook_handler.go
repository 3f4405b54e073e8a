package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/usecase"
)

// WordbookHandler serves the wordbook collection and its trash lifecycle.
type WordbookHandler struct {
	uc usecase.WordbookUsecase
}

// NewWordbookHandler creates a new wordbook handler.
func NewWordbookHandler(uc usecase.WordbookUsecase) *WordbookHandler {
	return &WordbookHandler{uc: uc}
}

// Register binds the wordbook routes.
func (h *WordbookHandler) Register(g *echo.Group) {
	g.GET("/wordbooks", h.list)
	g.POST("/wordbooks", h.create)
	g.GET("/wordbooks/trash", h.listTrash)
	g.DELETE("/wordbooks/trash", h.emptyTrash)
	g.GET("/wordbooks/:id", h.get)
	g.PATCH("/wordbooks/:id", h.rename)
	g.POST("/wordbooks/:id/trash", h.trash)
	g.DELETE("/wordbooks/:id", h.delete)
}

type wordbookNameRequest struct {
	Name string `json:"name"`
}

func (h *WordbookHandler) list(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	wordbooks, err := h.uc.ListWordbooks(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	if wordbooks == nil {
		wordbooks = []entity.Wordbook{}
	}
	return c.JSON(http.StatusOK, wordbooks)
}

func (h *WordbookHandler) create(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordbookNameRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	wordbook, err := h.uc.CreateWordbook(c.Request().Context(), userID, req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, wordbook)
}

func (h *WordbookHandler) get(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	wordbook, err := h.uc.GetWordbook(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, wordbook)
}

func (h *WordbookHandler) rename(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordbookNameRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := h.uc.RenameWordbook(c.Request().Context(), userID, c.Param("id"), req.Name); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordbookHandler) trash(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	if err := h.uc.TrashWordbook(c.Request().Context(), userID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordbookHandler) listTrash(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	wordbooks, err := h.uc.ListTrashedWordbooks(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	if wordbooks == nil {
		wordbooks = []entity.Wordbook{}
	}
	return c.JSON(http.StatusOK, wordbooks)
}

func (h *WordbookHandler) emptyTrash(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	if err := h.uc.EmptyTrash(c.Request().Context(), userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordbookHandler) delete(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteWordbook(c.Request().Context(), userID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
