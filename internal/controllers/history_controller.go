package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"production-board/internal/dto"
	"production-board/internal/services"
	"production-board/pkg/utils"
)

type HistoryController struct {
	historyService services.HistorySyncServiceInterface
	logger         *zap.Logger
}

func NewHistoryController(historyService services.HistorySyncServiceInterface, logger *zap.Logger) *HistoryController {
	return &HistoryController{historyService: historyService, logger: logger}
}

// GetHistory - список сохраненных заказов; ?format=xlsx выгружает все строки файлом.
func (c *HistoryController) GetHistory(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))
	if format == "xlsx" {
		filter.WithPagination = false
	}
	c.logger.Debug("Запрос истории", zap.Any("filter", filter), zap.String("format", format))

	reqCtx, cancel := utils.ContextWithTimeout(ctx, 30)
	defer cancel()

	items, total, err := c.historyService.List(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, items)
	}
	return utils.ListResponse(ctx, items, filter, total, "Histórico de pedidos concluídos", http.StatusOK)
}

var historyHeaders = []string{"Data Conclusão", "Pedido", "PV", "Qtd Maquinas", "Equipamento", "Servico"}

func (c *HistoryController) respondWithXLSX(ctx echo.Context, items []dto.HistoryItemDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Concluidos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := writeHistorySheet(f, sheet, items); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка формирования xlsx: %w", err), c.logger)
	}

	fileName := fmt.Sprintf("historico_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func writeHistorySheet(f *excelize.File, sheet string, items []dto.HistoryItemDTO) error {
	header := make([]interface{}, len(historyHeaders))
	for i, h := range historyHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", style); err != nil {
		return err
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{item.CompletedAt, item.OrderID, item.ClientRef, item.Quantity, item.Equipment, item.Service}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("строка %s: %w", item.OrderID, err)
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{{"A", "A", 20}, {"B", "C", 15}, {"E", "F", 35}}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}
