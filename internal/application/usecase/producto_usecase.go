package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/stock"
)

// ProductoUseCase casos de uso CRUD para productos. Stock y estado se mutan
// exclusivamente vía el ledger; aquí solo se escribe el catálogo.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Crear crea un producto con stock cero. Los umbrales se validan aquí:
// un producto con minimo > advertencia produciría alertas sin sentido.
func (uc *ProductoUseCase) Crear(in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" || in.PrecioVenta.IsNegative() || in.PrecioCosto.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if err := stock.ValidarUmbrales(in.StockMinimo, in.StockAdvertencia); err != nil {
		return nil, err
	}
	existente, err := uc.repo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:               uuid.New().String(),
		Codigo:           in.Codigo,
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		PrecioVenta:      in.PrecioVenta,
		PrecioCosto:      in.PrecioCosto,
		StockActual:      0,
		StockMinimo:      in.StockMinimo,
		StockAdvertencia: in.StockAdvertencia,
		Estado:           stock.Clasificar(0, in.StockMinimo, in.StockAdvertencia),
		Serializado:      in.Serializado,
		Activo:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Crear(producto); err != nil {
		return nil, err
	}
	return dto.ToProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	return dto.ToProductoResponse(producto), nil
}

// Actualizar edita el catálogo. No toca stock ni estado salvo la
// reclasificación obligada cuando cambian los umbrales.
func (uc *ProductoUseCase) Actualizar(id string, in dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.PrecioVenta != nil {
		producto.PrecioVenta = *in.PrecioVenta
	}
	if in.PrecioCosto != nil {
		producto.PrecioCosto = *in.PrecioCosto
	}
	if in.StockMinimo != nil {
		producto.StockMinimo = *in.StockMinimo
	}
	if in.StockAdvertencia != nil {
		producto.StockAdvertencia = *in.StockAdvertencia
	}
	if err := stock.ValidarUmbrales(producto.StockMinimo, producto.StockAdvertencia); err != nil {
		return nil, err
	}
	producto.Estado = stock.Clasificar(producto.StockActual, producto.StockMinimo, producto.StockAdvertencia)
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Actualizar(producto); err != nil {
		return nil, err
	}
	return dto.ToProductoResponse(producto), nil
}

// Listar lista productos paginados.
func (uc *ProductoUseCase) Listar(limit, offset int) ([]*dto.ProductoResponse, error) {
	productos, err := uc.repo.Listar(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductoResponse, len(productos))
	for i, p := range productos {
		out[i] = dto.ToProductoResponse(p)
	}
	return out, nil
}

// Desactivar baja suave: el producto nunca se borra mientras lo referencien
// ventas o unidades.
func (uc *ProductoUseCase) Desactivar(id string) error {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrProductoNoEncontrado
	}
	return uc.repo.Desactivar(id)
}
