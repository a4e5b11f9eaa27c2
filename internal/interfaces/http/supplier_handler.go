package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// SupplierHandler lecturas del catálogo de proveedores (protegido).
type SupplierHandler struct {
	uc *procurement.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *procurement.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo proveedores activos"
// @Success      200  {array}   map[string]interface{}
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.uc.List(c.Context(), c.QueryBool("active"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierMap(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toSupplierMap(s))
}

func toSupplierMap(s *entity.Supplier) fiber.Map {
	return fiber.Map{
		"id":             s.ID,
		"name":           s.Name,
		"contact_person": s.ContactPerson,
		"email":          s.Email,
		"phone":          s.Phone,
		"tax_id":         s.TaxID,
		"payment_terms":  s.PaymentTerms,
		"active":         s.Active,
	}
}
