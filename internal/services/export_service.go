package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/events"
	"backoffice/internal/listkit"
	"backoffice/pkg/eventbus"
	"backoffice/pkg/utils"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"

	exportPageSize       = 100
	defaultExportMaxRows = 10000
	exportSheet          = "Заказы"
)

var exportHeaders = []string{"ID", "Number", "Date", "Status", "Store", "Customer", "Email", "Total", "Currency"}

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

type ExportServiceInterface interface {
	ExportOrders(ctx context.Context, store listkit.StateStore, key, user, format string) (*ExportFile, error)
}

type ExportService struct {
	orders  *ListPageService[entities.Order]
	lookups LookupServiceInterface
	bus     *eventbus.Bus
	maxRows int
	logger  *zap.Logger
}

func NewExportService(orders *ListPageService[entities.Order], lookups LookupServiceInterface, bus *eventbus.Bus, maxRows int, logger *zap.Logger) ExportServiceInterface {
	if maxRows <= 0 {
		maxRows = defaultExportMaxRows
	}
	return &ExportService{orders: orders, lookups: lookups, bus: bus, maxRows: maxRows, logger: logger.Named("export")}
}

// ExportOrders выгружает заказы по текущим фильтрам и сортировке пользователя.
// Если в таблице отмечены строки, выгружаются только они.
func (s *ExportService) ExportOrders(ctx context.Context, store listkit.StateStore, key, user, format string) (*ExportFile, error) {
	if format == "" {
		format = ExportCSV
	}
	state := s.orders.LoadState(ctx, store, key)

	var selected []int64
	if sel, err := s.orders.Selection(ctx, user); err == nil {
		selected = sel.Selected()
	}

	var (
		rows []entities.Order
		err  error
	)
	if len(selected) > 0 {
		rows, err = s.selectedRows(ctx, state, selected)
	} else {
		rows, err = s.allRows(ctx, state)
	}
	if err != nil {
		return nil, err
	}

	statuses := s.lookups.Names(ctx, LookupOrderStatuses)
	stores := s.lookups.Names(ctx, LookupStores)
	table := make([][]string, 0, len(rows))
	for _, o := range rows {
		table = append(table, orderRow(o, statuses, stores))
	}

	file := &ExportFile{Rows: len(rows)}
	stamp := time.Now().Format("2006-01-02")
	switch format {
	case ExportXLSX:
		file.Data, err = writeXLSX(table)
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		format = ExportCSV
		file.Data, err = writeCSV(table)
		file.ContentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования файла выгрузки: %w", err)
	}
	file.Name = fmt.Sprintf("orders_%s_%s.%s", stamp, uuid.NewString()[:8], format)

	s.logger.Info("Выгрузка заказов", zap.String("user", user), zap.String("format", format), zap.Int("rows", file.Rows), zap.Int("selected", len(selected)))
	if s.bus != nil {
		s.bus.Publish(ctx, events.ExportEvent{
			UserKey:   user,
			RequestID: utils.GetRequestIDFromCtx(ctx),
			Resource:  ScopeOrders,
			Format:    format,
			Rows:      file.Rows,
			Selected:  len(selected),
			Filters:   state.Filters,
		})
	}
	return file, nil
}

// allRows проходит страницы по 100 строк до total или лимита выгрузки.
func (s *ExportService) allRows(ctx context.Context, state listkit.SearchState) ([]entities.Order, error) {
	state.PerPage = exportPageSize
	var rows []entities.Order
	for page := 0; ; page++ {
		state.Page = page
		res, err := s.orders.Definition().Fetch(ctx, state)
		if err != nil {
			return nil, err
		}
		rows = append(rows, res.Items...)
		if len(rows) >= s.maxRows {
			return rows[:s.maxRows], nil
		}
		if len(res.Items) == 0 || (page+1)*exportPageSize >= res.Total {
			return rows, nil
		}
	}
}

// selectedRows: выбор живёт на текущей странице, её и перечитываем.
func (s *ExportService) selectedRows(ctx context.Context, state listkit.SearchState, selected []int64) ([]entities.Order, error) {
	res, err := s.orders.Definition().Fetch(ctx, state)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		wanted[id] = struct{}{}
	}
	rows := make([]entities.Order, 0, len(wanted))
	for _, o := range res.Items {
		if _, ok := wanted[o.ID]; ok {
			rows = append(rows, o)
		}
	}
	return rows, nil
}

func orderRow(o entities.Order, statuses, stores map[int64]string) []string {
	store := o.StoreName
	if store == "" && o.StoreID != nil {
		store = stores[*o.StoreID]
	}
	return []string{
		strconv.FormatInt(o.ID, 10),
		o.Number,
		o.CreatedAt.Format("2006-01-02 15:04"),
		o.StatusName(statuses),
		store,
		o.CustomerName,
		o.CustomerEmail,
		strconv.FormatFloat(o.Total, 'f', 2, 64),
		o.Currency,
	}
}

// csvBOM: без него Excel открывает кириллицу в неверной кодировке.
const csvBOM = "\ufeff"

func writeCSV(table [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteString(csvBOM)
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(table [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", style); err != nil {
		return nil, err
	}

	for i, row := range table {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(exportSheet, "B", "C", 18)
	_ = f.SetColWidth(exportSheet, "E", "G", 25)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
