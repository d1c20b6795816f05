package tools

import (
	"context"

	connector "github.com/armatrix/mcp-connect-go"
	"github.com/armatrix/mcp-connect-go/agent"
)

// excelService is the registry name of the Excel MCP server.
const excelService = "excel"

// ExcelCreateWorkbookInput is the input for excel_create_workbook.
type ExcelCreateWorkbookInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=Path for the new workbook (.xlsx)"`
}

// ExcelCreateWorkbookTool creates a new empty workbook.
type ExcelCreateWorkbookTool struct {
	conn *connector.Connector
}

var _ agent.Tool[ExcelCreateWorkbookInput] = (*ExcelCreateWorkbookTool)(nil)

// NewExcelCreateWorkbookTool binds the tool to a connector.
func NewExcelCreateWorkbookTool(conn *connector.Connector) *ExcelCreateWorkbookTool {
	return &ExcelCreateWorkbookTool{conn: conn}
}

func (t *ExcelCreateWorkbookTool) Name() string { return "excel_create_workbook" }
func (t *ExcelCreateWorkbookTool) Description() string {
	return "Create a new Excel workbook at the given path"
}

func (t *ExcelCreateWorkbookTool) Execute(ctx context.Context, input ExcelCreateWorkbookInput) (*agent.ToolResult, error) {
	if input.Filepath == "" {
		return agent.ErrorResult("filepath is required"), nil
	}
	return callService(ctx, t.conn, excelService, "create_workbook",
		map[string]any{"filepath": input.Filepath}, excelCallBudget)
}

// ExcelReadDataInput is the input for excel_read_data.
type ExcelReadDataInput struct {
	Filepath  string `json:"filepath" jsonschema:"required,description=Path to the workbook"`
	SheetName string `json:"sheet_name" jsonschema:"required,description=Worksheet to read"`
	StartCell string `json:"start_cell,omitempty" jsonschema:"description=Top-left cell of the range (e.g. A1)"`
	EndCell   string `json:"end_cell,omitempty" jsonschema:"description=Bottom-right cell of the range (e.g. C10)"`
}

// ExcelReadDataTool reads a cell range from a worksheet.
type ExcelReadDataTool struct {
	conn *connector.Connector
}

var _ agent.Tool[ExcelReadDataInput] = (*ExcelReadDataTool)(nil)

// NewExcelReadDataTool binds the tool to a connector.
func NewExcelReadDataTool(conn *connector.Connector) *ExcelReadDataTool {
	return &ExcelReadDataTool{conn: conn}
}

func (t *ExcelReadDataTool) Name() string { return "excel_read_data" }
func (t *ExcelReadDataTool) Description() string {
	return "Read data from an Excel worksheet, optionally bounded by a cell range"
}

func (t *ExcelReadDataTool) Execute(ctx context.Context, input ExcelReadDataInput) (*agent.ToolResult, error) {
	if input.Filepath == "" || input.SheetName == "" {
		return agent.ErrorResult("filepath and sheet_name are required"), nil
	}
	args := map[string]any{
		"filepath":   input.Filepath,
		"sheet_name": input.SheetName,
	}
	if input.StartCell != "" {
		args["start_cell"] = input.StartCell
	}
	if input.EndCell != "" {
		args["end_cell"] = input.EndCell
	}
	return callService(ctx, t.conn, excelService, "read_data_from_excel", args, excelCallBudget)
}

// ExcelWriteDataInput is the input for excel_write_data.
type ExcelWriteDataInput struct {
	Filepath  string  `json:"filepath" jsonschema:"required,description=Path to the workbook"`
	SheetName string  `json:"sheet_name" jsonschema:"required,description=Worksheet to write"`
	Data      [][]any `json:"data" jsonschema:"required,description=Rows of cell values to write"`
	StartCell string  `json:"start_cell,omitempty" jsonschema:"description=Top-left cell to start writing at (default A1)"`
}

// ExcelWriteDataTool writes rows of values into a worksheet.
type ExcelWriteDataTool struct {
	conn *connector.Connector
}

var _ agent.Tool[ExcelWriteDataInput] = (*ExcelWriteDataTool)(nil)

// NewExcelWriteDataTool binds the tool to a connector.
func NewExcelWriteDataTool(conn *connector.Connector) *ExcelWriteDataTool {
	return &ExcelWriteDataTool{conn: conn}
}

func (t *ExcelWriteDataTool) Name() string { return "excel_write_data" }
func (t *ExcelWriteDataTool) Description() string {
	return "Write rows of data to an Excel worksheet"
}

func (t *ExcelWriteDataTool) Execute(ctx context.Context, input ExcelWriteDataInput) (*agent.ToolResult, error) {
	if input.Filepath == "" || input.SheetName == "" {
		return agent.ErrorResult("filepath and sheet_name are required"), nil
	}
	if len(input.Data) == 0 {
		return agent.ErrorResult("data must contain at least one row"), nil
	}
	args := map[string]any{
		"filepath":   input.Filepath,
		"sheet_name": input.SheetName,
		"data":       input.Data,
	}
	if input.StartCell != "" {
		args["start_cell"] = input.StartCell
	}
	return callService(ctx, t.conn, excelService, "write_data_to_excel", args, excelCallBudget)
}

// ExcelWorkbookMetadataInput is the input for excel_workbook_metadata.
type ExcelWorkbookMetadataInput struct {
	Filepath string `json:"filepath" jsonschema:"required,description=Path to the workbook"`
}

// ExcelWorkbookMetadataTool reports sheets and ranges of a workbook.
type ExcelWorkbookMetadataTool struct {
	conn *connector.Connector
}

var _ agent.Tool[ExcelWorkbookMetadataInput] = (*ExcelWorkbookMetadataTool)(nil)

// NewExcelWorkbookMetadataTool binds the tool to a connector.
func NewExcelWorkbookMetadataTool(conn *connector.Connector) *ExcelWorkbookMetadataTool {
	return &ExcelWorkbookMetadataTool{conn: conn}
}

func (t *ExcelWorkbookMetadataTool) Name() string { return "excel_workbook_metadata" }
func (t *ExcelWorkbookMetadataTool) Description() string {
	return "Get metadata about an Excel workbook: worksheets and used ranges"
}

func (t *ExcelWorkbookMetadataTool) Execute(ctx context.Context, input ExcelWorkbookMetadataInput) (*agent.ToolResult, error) {
	if input.Filepath == "" {
		return agent.ErrorResult("filepath is required"), nil
	}
	return callService(ctx, t.conn, excelService, "get_workbook_metadata",
		map[string]any{"filepath": input.Filepath}, excelCallBudget)
}
