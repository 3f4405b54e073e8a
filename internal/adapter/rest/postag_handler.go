package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/usecase"
)

// PosTagHandler serves the user-defined part-of-speech tags.
type PosTagHandler struct {
	uc usecase.PosTagUsecase
}

// NewPosTagHandler creates a new tag handler.
func NewPosTagHandler(uc usecase.PosTagUsecase) *PosTagHandler {
	return &PosTagHandler{uc: uc}
}

// Register binds the tag routes.
func (h *PosTagHandler) Register(g *echo.Group) {
	g.GET("/tags", h.list)
	g.POST("/tags", h.create)
	g.PATCH("/tags/:id", h.update)
	g.DELETE("/tags/:id", h.delete)
}

type posTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type posTagPatchRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *PosTagHandler) list(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	tags, err := h.uc.ListPosTags(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	if tags == nil {
		tags = []entity.PosTag{}
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *PosTagHandler) create(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req posTagRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	tag, err := h.uc.CreatePosTag(c.Request().Context(), userID, &entity.PosTag{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *PosTagHandler) update(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req posTagPatchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	patch := entity.PosTagPatch{Name: req.Name, Color: req.Color}
	if err := h.uc.UpdatePosTag(c.Request().Context(), userID, c.Param("id"), patch); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PosTagHandler) delete(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeletePosTag(c.Request().Context(), userID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
