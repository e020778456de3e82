// controller/catalog_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en18031/conformity/catalog"
	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/util"
)

// CatalogController serves the static test-case and decision-tree catalogs.
type CatalogController struct {
	catalog *catalog.Catalog
}

func NewCatalogController(cat *catalog.Catalog) *CatalogController {
	return &CatalogController{catalog: cat}
}

// RegisterRoutes registers the API routes
func (cc *CatalogController) RegisterRoutes(r *gin.RouterGroup) {
	testCases := r.Group("/testcases")
	{
		testCases.GET("", cc.ListTestCases)
		testCases.GET("/:id", cc.GetTestCase)
		testCases.GET("/:id/tree", cc.GetDecisionTree)
	}
}

// ListTestCases endpoint. Filters by mechanism when ?mechanism= is given.
func (cc *CatalogController) ListTestCases(c *gin.Context) {
	if mechanism := c.Query("mechanism"); mechanism != "" {
		c.JSON(http.StatusOK, cc.catalog.TestCasesByMechanism(mechanism))
		return
	}
	c.JSON(http.StatusOK, cc.catalog.TestCases())
}

// GetTestCase endpoint
func (cc *CatalogController) GetTestCase(c *gin.Context) {
	tc, err := cc.catalog.TestCase(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusNotFound, "Test case not found", err)
		return
	}
	c.JSON(http.StatusOK, tc)
}

// GetDecisionTree endpoint returns the decision tree bound to a conceptual
// test case.
func (cc *CatalogController) GetDecisionTree(c *gin.Context) {
	tree, err := cc.catalog.TreeForTestCase(c.Param("id"))
	if err != nil {
		if errors.Is(err, conf_errors.ErrTreeNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "No decision tree for test case", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load decision tree", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           tree.ID,
		"mechanism":    tree.Mechanism,
		"test_case_id": tree.TestCaseID,
		"root":         tree.RootID,
		"nodes":        tree.NodeList,
	})
}
