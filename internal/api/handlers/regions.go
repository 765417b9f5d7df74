package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"inventory-twin/internal/api/models"
	"inventory-twin/internal/data"
)

// ListRegions handles GET /api/v1/regions
func ListRegions(c *gin.Context) {
	list, err := loadRegions()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "REGIONS_LOAD_ERROR",
			fmt.Sprintf("Failed to load regions: %v", err), nil)
		return
	}

	regions := make([]models.RegionInfo, len(list.Regions))
	for i, r := range list.Regions {
		regions[i] = models.RegionInfo{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Desc,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"product":    list.Product,
		"regions":    regions,
		"updated_at": list.UpdatedAt,
		"count":      len(regions),
	})
}

// loadRegions reads the catalogue file, falling back to the built-in PADD list
// when no file has been written.
func loadRegions() (*data.RegionList, error) {
	list, err := data.LoadRegions(data.GetDefaultRegionsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data.DefaultRegions(), nil
		}
		return nil, err
	}
	return list, nil
}
