package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"booksmart/dto"
	"booksmart/usecase"
	"booksmart/utils"
)

// ExportDataHandler streams the account's full snapshot as a JSON
// download.
func ExportDataHandler(c *gin.Context, svc *usecase.TransferService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	snapshot, err := svc.ExportAllData(c.Request.Context(), userID.(string), c.Query("current_board_id"))
	if err != nil {
		utils.InternalError(c, "Failed to export data")
		return
	}

	filename := fmt.Sprintf("booksmart-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	utils.Success(c, snapshot)
}

// ImportDataHandler merges an exported snapshot into the account. The
// import is additive: existing boards stay, imported boards get fresh IDs.
func ImportDataHandler(c *gin.Context, svc *usecase.TransferService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var snapshot dto.ExportSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		utils.BadRequest(c, "Invalid import file")
		return
	}

	result, err := svc.ImportAllData(c.Request.Context(), userID.(string), &snapshot)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, result)
}

// ClearDataHandler wipes every board the account owns. The request body
// must carry confirm:true; this is not an operation to trip over.
func ClearDataHandler(c *gin.Context, svc *usecase.TransferService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		utils.BadRequest(c, "Confirmation is required")
		return
	}

	if err := svc.ClearAllData(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "Failed to clear data")
		return
	}

	utils.Success(c, gin.H{"message": "All data cleared"})
}
