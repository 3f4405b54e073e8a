package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/usecase"
)

// WordHandler serves the words nested under a wordbook, including the
// bulk import, reset and delete operations.
type WordHandler struct {
	uc usecase.WordUsecase
}

// NewWordHandler creates a new word handler.
func NewWordHandler(uc usecase.WordUsecase) *WordHandler {
	return &WordHandler{uc: uc}
}

// Register binds the word routes.
func (h *WordHandler) Register(g *echo.Group) {
	g.GET("/wordbooks/:wordbookId/words", h.list)
	g.POST("/wordbooks/:wordbookId/words", h.create)
	g.PATCH("/wordbooks/:wordbookId/words/:id", h.update)
	g.DELETE("/wordbooks/:wordbookId/words/:id", h.delete)
	g.POST("/wordbooks/:wordbookId/words/import", h.bulkImport)
	g.POST("/wordbooks/:wordbookId/words/reset-progress", h.resetProgress)
	g.POST("/wordbooks/:wordbookId/words/bulk-delete", h.bulkDelete)
}

type wordRequest struct {
	Text               string               `json:"text"`
	Phonetic           string               `json:"phonetic"`
	Favorite           bool                 `json:"favorite"`
	Translation        string               `json:"translation"`
	PosIDs             []string             `json:"posIds"`
	Example            string               `json:"example"`
	ExampleTranslation string               `json:"exampleTranslation"`
	Related            *entity.RelatedWords `json:"related"`
	Frequency          int32                `json:"frequency"`
	Mastery            int32                `json:"mastery"`
	Note               string               `json:"note"`
}

func (r wordRequest) toWord() entity.Word {
	return entity.Word{
		Text:               r.Text,
		Phonetic:           r.Phonetic,
		Favorite:           r.Favorite,
		Translation:        r.Translation,
		PosIDs:             r.PosIDs,
		Example:            r.Example,
		ExampleTranslation: r.ExampleTranslation,
		Related:            r.Related,
		Frequency:          r.Frequency,
		Mastery:            r.Mastery,
		Note:               r.Note,
	}
}

type wordPatchRequest struct {
	Text               *string              `json:"text"`
	Phonetic           *string              `json:"phonetic"`
	Favorite           *bool                `json:"favorite"`
	Translation        *string              `json:"translation"`
	PosIDs             *[]string            `json:"posIds"`
	Example            *string              `json:"example"`
	ExampleTranslation *string              `json:"exampleTranslation"`
	Related            *entity.RelatedWords `json:"related"`
	Frequency          *int32               `json:"frequency"`
	Mastery            *int32               `json:"mastery"`
	Note               *string              `json:"note"`
	ReviewedAt         *time.Time           `json:"reviewedAt"`
	StudyCount         *int32               `json:"studyCount"`
}

func (r wordPatchRequest) toPatch() entity.WordPatch {
	return entity.WordPatch{
		Text:               r.Text,
		Phonetic:           r.Phonetic,
		Favorite:           r.Favorite,
		Translation:        r.Translation,
		PosIDs:             r.PosIDs,
		Example:            r.Example,
		ExampleTranslation: r.ExampleTranslation,
		Related:            r.Related,
		Frequency:          r.Frequency,
		Mastery:            r.Mastery,
		Note:               r.Note,
		ReviewedAt:         r.ReviewedAt,
		StudyCount:         r.StudyCount,
	}
}

type importWordsRequest struct {
	Words []wordRequest `json:"words"`
}

type wordIDsRequest struct {
	IDs []string `json:"ids"`
}

func (h *WordHandler) list(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	words, err := h.uc.ListWords(c.Request().Context(), userID, c.Param("wordbookId"))
	if err != nil {
		return httpError(err)
	}
	if words == nil {
		words = []entity.Word{}
	}
	return c.JSON(http.StatusOK, words)
}

func (h *WordHandler) create(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	draft := req.toWord()
	word, err := h.uc.CreateWord(c.Request().Context(), userID, c.Param("wordbookId"), &draft)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, word)
}

func (h *WordHandler) update(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordPatchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	err = h.uc.UpdateWord(c.Request().Context(), userID, c.Param("wordbookId"), c.Param("id"), req.toPatch())
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordHandler) delete(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	err = h.uc.DeleteWord(c.Request().Context(), userID, c.Param("wordbookId"), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordHandler) bulkImport(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req importWordsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	drafts := lo.Map(req.Words, func(w wordRequest, _ int) entity.Word { return w.toWord() })
	imported, err := h.uc.ImportWords(c.Request().Context(), userID, c.Param("wordbookId"), drafts)
	if err != nil {
		return httpError(err)
	}
	if imported == nil {
		imported = []entity.Word{}
	}
	return c.JSON(http.StatusCreated, imported)
}

func (h *WordHandler) resetProgress(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordIDsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	err = h.uc.ResetProgress(c.Request().Context(), userID, c.Param("wordbookId"), req.IDs)
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WordHandler) bulkDelete(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	var req wordIDsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	err = h.uc.DeleteWords(c.Request().Context(), userID, c.Param("wordbookId"), req.IDs)
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
