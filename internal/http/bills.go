package http

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"roomshare-go/internal/service"
)

type shareRequest struct {
	UserID    uint    `json:"user_id"`
	AmountDue float64 `json:"amount_due"`
	Status    string  `json:"status"`
}

type billRequest struct {
	Description string         `json:"description"`
	BillType    string         `json:"bill_type"`
	TotalAmount float64        `json:"total_amount"`
	DueDate     string         `json:"due_date"`
	SplitRule   string         `json:"split_rule"`
	Shares      []shareRequest `json:"shares"`
}

func (r *billRequest) toInput() service.BillInput {
	shares := make([]service.ShareInput, len(r.Shares))
	for i, sh := range r.Shares {
		shares[i] = service.ShareInput{UserID: sh.UserID, AmountDue: sh.AmountDue, Status: sh.Status}
	}
	return service.BillInput{
		Description: r.Description,
		BillType:    r.BillType,
		TotalAmount: r.TotalAmount,
		DueDate:     r.DueDate,
		SplitRule:   r.SplitRule,
		Shares:      shares,
	}
}

// bindBill validates the raw body against the given schema before decoding
// it, so requests with unknown or misshapen fields fail with details instead
// of being silently accepted.
func bindBill(c *gin.Context, schema *gojsonschema.Schema) (*billRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "failed to read body"})
		return nil, false
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_json"})
		return nil, false
	}
	if !res.Valid() {
		details := []string{}
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"error": "schema_invalid", "details": details})
		return nil, false
	}

	var req billRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil, false
	}
	return &req, true
}

func billIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "invalid_bill_id"})
		return 0, false
	}
	return uint(id), true
}

// POST /v1/bills
func (s *Server) createBill(c *gin.Context) {
	req, ok := bindBill(c, s.createValidator)
	if !ok {
		return
	}

	billID, err := s.bills.Create(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(201, gin.H{"success": true, "bill_id": billID})
}

// PUT /v1/bills/:id
func (s *Server) updateBill(c *gin.Context) {
	billID, ok := billIDParam(c)
	if !ok {
		return
	}
	req, ok := bindBill(c, s.updateValidator)
	if !ok {
		return
	}

	if err := s.bills.Update(c.Request.Context(), currentUserID(c), billID, req.toInput()); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// DELETE /v1/bills/:id
func (s *Server) deleteBill(c *gin.Context) {
	billID, ok := billIDParam(c)
	if !ok {
		return
	}

	if err := s.bills.Delete(c.Request.Context(), currentUserID(c), billID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// GET /v1/bills/outstanding?filter=outstanding|all
func (s *Server) listOutstandingBills(c *gin.Context) {
	filter := c.DefaultQuery("filter", "outstanding")

	bills, err := s.bills.ListOutstandingForUser(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"bills": bills})
}

// GET /v1/bills/created
func (s *Server) listCreatedBills(c *gin.Context) {
	bills, err := s.bills.ListCreatedByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"bills": bills})
}

// GET /v1/bills/:id/shares
func (s *Server) listBillShares(c *gin.Context) {
	billID, ok := billIDParam(c)
	if !ok {
		return
	}

	shares, err := s.bills.ListShares(c.Request.Context(), currentUserID(c), billID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"shares": shares})
}

// GET /v1/bills/:id/payer-info
func (s *Server) getPayerInfo(c *gin.Context) {
	billID, ok := billIDParam(c)
	if !ok {
		return
	}

	payer, err := s.bills.GetPayerInfo(c.Request.Context(), currentUserID(c), billID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"payer": payer})
}

// PUT /v1/bills/:id/update-payment-status
func (s *Server) updatePaymentStatus(c *gin.Context) {
	billID, ok := billIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := s.bills.UpdateShareStatus(c.Request.Context(), currentUserID(c), billID, input.Status); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "payment status updated"})
}
