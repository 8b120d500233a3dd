package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/models"
	"github.com/ianmabie/appbot-review-display-dash/internal/store"
	"github.com/ianmabie/appbot-review-display-dash/internal/util"
)

// ExportHandler 把当前保留窗口里的评论导出成文件
type ExportHandler struct {
	Store *store.ReviewStore
	Limit int
	Log   *zap.SugaredLogger
}

func NewExportHandler(s *store.ReviewStore, limit int, log *zap.SugaredLogger) *ExportHandler {
	return &ExportHandler{Store: s, Limit: limit, Log: log}
}

var exportHeader = []string{"Author", "Rating", "Subject", "Body", "Published", "Sentiment", "Received"}

func exportRow(r *models.Review) []string {
	published := ""
	if r.PublishedAt != nil {
		published = r.PublishedAt.Format("2006-01-02")
	}
	return []string{
		r.Author,
		strconv.Itoa(r.Rating),
		r.Subject,
		r.Body,
		published,
		r.Sentiment,
		r.ReceivedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportCSV 导出评论为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	reviews, err := h.Store.ListRecent(c.Request.Context(), h.Limit)
	if err != nil {
		h.Log.Errorw("export query failed", "error", err)
		util.Error(c, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"reviews_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM，Excel 打开时才能正确识别编码
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeader)
	for i := range reviews {
		writer.Write(exportRow(&reviews[i]))
	}
}

// ExportXLSX 导出评论为 Excel
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	reviews, err := h.Store.ListRecent(c.Request.Context(), h.Limit)
	if err != nil {
		h.Log.Errorw("export query failed", "error", err)
		util.Error(c, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for rowIdx := range reviews {
		for col, value := range exportRow(&reviews[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"reviews_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		h.Log.Errorw("write xlsx", "error", err)
	}
}
