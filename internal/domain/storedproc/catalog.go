package storedproc

// Catálogo de procedimientos almacenados. Toda la regla de negocio (cantidades,
// estados de calidad, ubicaciones, numeración) vive en ellos; aquí solo se declara
// la firma para validar tipos antes de ir a la base.

func barcodeParam() Param { return NVarChar("pallet_barcode", 100) }
func userParam() Param { return NVarChar("user_id", 50) }
func matDocParam() Param { return NVarChar("material_document", 20) }
func quantityParam() Param { return Decimal("quantity", 18, 3) }
func locationParam(name string) Param { return NVarChar(name, 10) }

// Put-away.
var (
	PutAwayValidate = Procedure{
		Name:   "sp_putaway_validate_pallet",
		Params: []Param{barcodeParam(), locationParam("location"), quantityParam(), userParam()},
	}
	PutAwayCommit = Procedure{
		Name: "sp_putaway_update_serial",
		Params: []Param{
			barcodeParam(), NVarChar("serial_no", 50), locationParam("location"),
			matDocParam(), userParam(),
		},
	}
)

// Picking.
var (
	PickingValidate = Procedure{
		Name:   "sp_picking_validate_pallet",
		Params: []Param{barcodeParam(), NVarChar("picklist_no", 20), quantityParam(), userParam()},
	}
	PickingCommit = Procedure{
		Name: "sp_picking_update_pallet",
		Params: []Param{
			barcodeParam(), NVarChar("picklist_no", 20), quantityParam(), matDocParam(), userParam(),
		},
	}
	PickingCloseDelivery = Procedure{
		Name:   "sp_picking_close_delivery",
		Params: []Param{NVarChar("delivery_no", 20), NVarChar("sap_message", 1000), userParam()},
	}
)

// Inward (recepción de producción contra orden).
var (
	InwardValidate = Procedure{
		Name:   "sp_inward_validate_pallet",
		Params: []Param{barcodeParam(), NVarChar("order_no", 12), userParam()},
	}
	InwardCommit = Procedure{
		Name:   "sp_inward_update_pallet",
		Params: []Param{barcodeParam(), NVarChar("order_no", 12), matDocParam(), userParam()},
	}
)

// Desecho: solicitud + aprobación.
var (
	ScrapValidate = Procedure{
		Name:   "sp_scrap_validate_pallet",
		Params: []Param{barcodeParam(), quantityParam(), userParam()},
	}
	ScrapRequest = Procedure{
		Name:   "sp_scrap_insert_request",
		Params: []Param{barcodeParam(), quantityParam(), NVarChar("reason", 200), userParam()},
	}
	ScrapApprovalValidate = Procedure{
		Name:   "sp_scrap_validate_approval",
		Params: []Param{Int("request_id"), userParam()},
	}
	ScrapCommit = Procedure{
		Name:   "sp_scrap_update_request",
		Params: []Param{Int("request_id"), matDocParam(), userParam()},
	}
)

// Resorting (cambio de lote).
var (
	ResortValidate = Procedure{
		Name:   "sp_resort_validate_pallet",
		Params: []Param{barcodeParam(), NVarChar("new_batch", 20), userParam()},
	}
	ResortCommit = Procedure{
		Name:   "sp_resort_update_pallet",
		Params: []Param{barcodeParam(), NVarChar("new_batch", 20), matDocParam(), userParam()},
	}
)

// Traslado entre almacenes.
var (
	TransferValidate = Procedure{
		Name:   "sp_transfer_validate_pallet",
		Params: []Param{barcodeParam(), locationParam("to_location"), userParam()},
	}
	TransferCommit = Procedure{
		Name:   "sp_transfer_update_pallet",
		Params: []Param{barcodeParam(), locationParam("to_location"), matDocParam(), userParam()},
	}
)

// PalletBreakValidate además de validar genera el número del pallet nuevo.
var PalletBreakValidate = Procedure{
	Name:   "sp_pallet_break_validate",
	Params: []Param{barcodeParam(), Decimal("break_quantity", 18, 3), userParam()},
}

// Etiquetas.
var (
	LabelSerialDetails = Procedure{
		Name:   "sp_label_get_serial_details",
		Params: []Param{NVarChar("serial_no", 50), userParam()},
	}
	LabelMarkPrinted = Procedure{
		Name:   "sp_label_update_print_status",
		Params: []Param{NVarChar("serial_no", 50), NVarChar("printer_ip", 45), userParam()},
	}
)

// SAPErrorLogInsert registra una posición que SAP no contabilizó.
var SAPErrorLogInsert = Procedure{
	Name: "sp_sap_error_log_insert",
	Params: []Param{
		NVarChar("pallet_barcode", 100),
		NVarChar("order_no", 12),
		NVarChar("material", 18),
		NVarChar("batch", 20),
		NVarChar("plant", 4),
		NVarChar("storage_location", 4),
		NVarChar("move_type", 3),
		NVarChar("stock_type", 1),
		NVarChar("move_batch", 20),
		NVarChar("move_storage_location", 4),
		NVarChar("spec_stock", 1),
		NVarChar("movement_indicator", 1),
		NVarChar("unit", 3),
		NVarChar("unit_iso", 3),
		Decimal("quantity", 18, 3),
		NVarChar("error_message", 1000),
		NVarChar("gm_code", 2),
		NVarChar("created_by", 50),
	},
}
