// Package sap es el cliente REST del middleware conector SAP (BAPI sobre HTTP/JSON).
package sap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/pkg/config"
)

var (
	_ movement.GoodsMovementPoster = (*Client)(nil)
	_ ports.SAPLookup              = (*Client)(nil)
)

// maxResponseBytes límite de lectura de respuestas (las listas de materiales son grandes).
const maxResponseBytes = 32 << 20

// Client cliente del middleware. El timeout se fija por llamada: cada operación
// de bodega tiene el suyo (30 s a 300 s).
type Client struct {
	baseURL    string
	conn       config.SAPConnection
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente con la URL base del middleware.
func NewClient(cfg config.SAPConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.MiddlewareURL, "/"),
		conn:       cfg.Connection,
		httpClient: &http.Client{},
		log:        log,
	}
}

// CreateGoodsMovement contabiliza un movimiento de mercancías.
// Con documento de material → éxito; con Return[0].TYPE ∈ {E,I,A} → error de negocio;
// cualquier otro caso sin documento → fallo sin mensaje (el flujo lo completa).
func (c *Client) CreateGoodsMovement(ctx context.Context, p entity.GoodsMovementPosting, timeout time.Duration) (entity.SAPOutcome, error) {
	req := goodsMovementRequest{
		ConnectionParams: c.conn,
		Code:             goodsMovementCode{GMCode: p.GMCode},
		Header: goodsMovementHeader{
			PostingDate:  p.Header.PostingDate.Format(sapDateLayout),
			DocumentDate: p.Header.DocumentDate.Format(sapDateLayout),
			HeaderText:   p.Header.HeaderText,
			UserName:     p.Header.UserName,
		},
		Items:   make([]goodsMovementItem, len(p.Items)),
		TestRun: false,
	}
	for i, it := range p.Items {
		req.Items[i] = toItem(it)
	}

	var resp goodsMovementResponse
	if err := c.post(ctx, pathGoodsMovementCreate, req, &resp, timeout); err != nil {
		return entity.SAPOutcome{}, err
	}
	return interpret(resp), nil
}

func toItem(it entity.GoodsMovementItem) goodsMovementItem {
	unit := barcode.NormalizeUnit(it.Unit)
	unitISO := it.UnitISO
	if unitISO == "" {
		unitISO = barcode.UnitISO(unit)
	}
	out := goodsMovementItem{
		Material:            barcode.PadMaterial(it.Material),
		Plant:               it.Plant,
		StorageLocation:     it.StorageLocation,
		Batch:               it.Batch,
		MoveType:            it.MoveType,
		StockType:           it.StockType,
		EntryQuantity:       json.Number(it.Quantity.String()),
		EntryUnit:           unit,
		EntryUnitISO:        unitISO,
		MovementIndicator:   it.MovementIndicator,
		MoveBatch:           it.MoveBatch,
		MoveStorageLocation: it.MoveStorageLocation,
		SpecialStock:        it.SpecialStock,
	}
	if it.OrderID != "" {
		out.OrderID = barcode.PadOrder(it.OrderID)
	}
	return out
}

func interpret(resp goodsMovementResponse) entity.SAPOutcome {
	if resp.HeadRet != nil && strings.TrimSpace(resp.HeadRet.MaterialDocument) != "" {
		return entity.SAPOutcome{
			MaterialDocument: strings.TrimSpace(resp.HeadRet.MaterialDocument),
			DocumentYear:     resp.HeadRet.DocumentYear,
		}
	}
	if len(resp.Return) > 0 && entity.IsBusinessErrorType(resp.Return[0].Type) {
		return entity.SAPOutcome{ErrorType: resp.Return[0].Type, ErrorMessage: resp.Return[0].Message}
	}
	for _, r := range resp.Return {
		if r.Message != "" {
			return entity.SAPOutcome{ErrorType: r.Type, ErrorMessage: r.Message}
		}
	}
	return entity.SAPOutcome{}
}

// OrderDetails detalle de una orden de producción (pass-through del JSON del middleware).
func (c *Client) OrderDetails(ctx context.Context, orderNo string, timeout time.Duration) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, pathOrderDetails, orderDetailsRequest{
		ConnectionParams: c.conn,
		OrderNumber:      barcode.PadOrder(orderNo),
	}, &out, timeout)
	return out, err
}

// Materials maestro de materiales de un centro.
func (c *Client) Materials(ctx context.Context, plant string, timeout time.Duration) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, pathMaterialGetAll, materialGetAllRequest{ConnectionParams: c.conn, Plant: plant}, &out, timeout)
	return out, err
}

// PicklistDetails posiciones de una lista de picking.
func (c *Client) PicklistDetails(ctx context.Context, picklistNo string, timeout time.Duration) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, pathPicklistDetails, picklistDetailsRequest{ConnectionParams: c.conn, PicklistNumber: picklistNo}, &out, timeout)
	return out, err
}

// CloseDeliveryOrder cierra la entrega en SAP. Un Return con E/A significa que no se cerró.
func (c *Client) CloseDeliveryOrder(ctx context.Context, deliveryNo string, timeout time.Duration) (*entity.DeliveryClose, error) {
	var resp struct {
		Return []ReturnMessage `json:"Return"`
	}
	if err := c.post(ctx, pathDeliveryOrderClose, deliveryCloseRequest{ConnectionParams: c.conn, Delivery: deliveryNo}, &resp, timeout); err != nil {
		return nil, err
	}
	out := &entity.DeliveryClose{Closed: true}
	for _, r := range resp.Return {
		if r.Type == entity.SAPMessageError || r.Type == entity.SAPMessageAbort {
			out.Closed = false
			out.Message = r.Message
			break
		}
		if out.Message == "" {
			out.Message = r.Message
		}
	}
	return out, nil
}

// post envía body como JSON y decodifica la respuesta 2xx en out.
func (c *Client) post(ctx context.Context, path string, body, out any, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("sap: serializar petición: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sap: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := err.Error()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("timeout tras %s llamando a SAP (%s)", timeout, path)
		}
		c.log.Warn().Err(err).Str("path", path).Dur("elapsed", time.Since(start)).Msg("SAP middleware inaccesible")
		return &TransportError{Message: msg, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Message: "leer respuesta SAP: " + err.Error(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractMessage(resp.StatusCode, data)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("error", msg).Msg("SAP middleware respondió error")
		return &TransportError{StatusCode: resp.StatusCode, Message: msg}
	}
	c.log.Debug().Str("path", path).Dur("elapsed", time.Since(start)).Msg("SAP middleware OK")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Message: "respuesta SAP inválida: " + err.Error(), Err: err}
	}
	return nil
}
