package sap

import (
	"encoding/json"

	"github.com/jhoicas/wms-sap-api/pkg/config"
)

// Rutas del middleware conector SAP.
const (
	pathGoodsMovementCreate = "/api/goods-movement/create"
	pathOrderDetails        = "/api/order/details"
	pathMaterialGetAll      = "/api/material/getall"
	pathDeliveryOrderClose  = "/api/delivery-order/close"
	pathPicklistDetails     = "/api/picklist/details"
)

const sapDateLayout = "2006-01-02"

type goodsMovementCode struct {
	GMCode string `json:"GM_CODE"`
}

type goodsMovementHeader struct {
	PostingDate  string `json:"PSTNG_DATE"`
	DocumentDate string `json:"DOC_DATE"`
	HeaderText   string `json:"HEADER_TXT"`
	UserName     string `json:"PR_UNAME"`
}

type goodsMovementItem struct {
	Material            string      `json:"MATERIAL"`
	Plant               string      `json:"PLANT"`
	StorageLocation     string      `json:"STGE_LOC"`
	Batch               string      `json:"BATCH"`
	MoveType            string      `json:"MOVE_TYPE"`
	StockType           string      `json:"STCK_TYPE"`
	EntryQuantity       json.Number `json:"ENTRY_QNT"`
	EntryUnit           string      `json:"ENTRY_UOM"`
	EntryUnitISO        string      `json:"ENTRY_UOM_ISO"`
	OrderID             string      `json:"ORDERID,omitempty"`
	MovementIndicator   string      `json:"MVT_IND,omitempty"`
	MoveBatch           string      `json:"MOVE_BATCH,omitempty"`
	MoveStorageLocation string      `json:"MOVE_STLOC,omitempty"`
	SpecialStock        string      `json:"SPEC_STOCK,omitempty"`
}

type goodsMovementRequest struct {
	ConnectionParams config.SAPConnection `json:"ConnectionParams"`
	Code             goodsMovementCode    `json:"GOODSMVT_CODE"`
	Header           goodsMovementHeader  `json:"GOODSMVT_HEADER"`
	Items            []goodsMovementItem  `json:"GOODSMVT_ITEM"`
	TestRun          bool                 `json:"TESTRUN"`
}

// ReturnMessage entrada BAPIRET2 de Return[].
type ReturnMessage struct {
	Type    string `json:"TYPE"`
	ID      string `json:"ID"`
	Number  string `json:"NUMBER"`
	Message string `json:"MESSAGE"`
}

type goodsMovementHeadRet struct {
	MaterialDocument string `json:"MAT_DOC"`
	DocumentYear     string `json:"DOC_YEAR"`
}

type goodsMovementResponse struct {
	HeadRet *goodsMovementHeadRet `json:"GoodsMovementHeadRet"`
	Return  []ReturnMessage       `json:"Return"`
}

// errorBody forma de los errores del middleware (.NET Web API).
type errorBody struct {
	Message    string          `json:"Message"`
	ModelState json.RawMessage `json:"ModelState"`
}

type orderDetailsRequest struct {
	ConnectionParams config.SAPConnection `json:"ConnectionParams"`
	OrderNumber      string               `json:"ORDER_NUMBER"`
}

type materialGetAllRequest struct {
	ConnectionParams config.SAPConnection `json:"ConnectionParams"`
	Plant            string               `json:"PLANT"`
}

type deliveryCloseRequest struct {
	ConnectionParams config.SAPConnection `json:"ConnectionParams"`
	Delivery         string               `json:"DELIVERY"`
}

type picklistDetailsRequest struct {
	ConnectionParams config.SAPConnection `json:"ConnectionParams"`
	PicklistNumber   string               `json:"PICKLIST_NO"`
}
