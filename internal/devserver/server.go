// Package devserver is a fixture implementation of the storefront REST
// contract, used for local development and by the API client tests. It
// holds everything in memory and mints order ids from a counter.
package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// Server serves the fixture backend.
type Server struct {
	mu          sync.Mutex
	nextOrderID int64
	saved       map[string]bool
	// Orders records every submission, keyed by minted order id.
	Orders map[string]SubmittedOrder
}

// SubmittedOrder is one backend order created by a submission.
type SubmittedOrder struct {
	StoreID     string
	FullName    string
	PhoneNumber string
	Address     string
	WilayaID    int
	CommuneID   int
	Items       []SubmittedItem
}

// SubmittedItem is one line of a submitted order.
type SubmittedItem struct {
	ProductID string
	Quantity  int
}

func New() *Server {
	return &Server{
		nextOrderID: 501,
		saved:       make(map[string]bool),
		Orders:      make(map[string]SubmittedOrder),
	}
}

// Router wires the REST contract.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/products", s.getProducts).Methods(http.MethodGet)
	router.HandleFunc("/suppliers", s.getSuppliers).Methods(http.MethodGet)
	router.HandleFunc("/wilayas", s.getWilayas).Methods(http.MethodGet)
	router.HandleFunc("/wilayas/{id}/communes", s.getCommunes).Methods(http.MethodGet)
	router.HandleFunc("/orders/buy-now", s.buyNow).Methods(http.MethodPost)
	router.HandleFunc("/orders/validate", s.validateCart).Methods(http.MethodPost)
	router.HandleFunc("/saved-products/save", s.saveProduct).Methods(http.MethodPost)
	router.HandleFunc("/saved-products/unsave", s.unsaveProduct).Methods(http.MethodPost)
	return router
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func (s *Server) mintOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOrderID
	s.nextOrderID++
	return strconv.FormatInt(id, 10)
}

func authorized(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (s *Server) getProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"data": fixtureProducts})
}

func (s *Server) getSuppliers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"data": fixtureSuppliers})
}

func (s *Server) getWilayas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, fixtureWilayas)
}

func (s *Server) getCommunes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid wilaya id")
		return
	}
	communes, ok := fixtureCommunes[id]
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("wilaya %d not found", id))
		return
	}
	respondJSON(w, http.StatusOK, communes)
}

type buyNowRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	WilayaID    int    `json:"wilaya_id"`
	CommuneID   int    `json:"commune_id"`
}

func (s *Server) buyNow(w http.ResponseWriter, r *http.Request) {
	var req buyNowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid order request")
		return
	}
	if req.FullName == "" || req.PhoneNumber == "" || req.Address == "" {
		respondError(w, http.StatusUnprocessableEntity, "missing customer details")
		return
	}

	id := s.mintOrderID()
	s.mu.Lock()
	s.Orders[id] = SubmittedOrder{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		WilayaID:    req.WilayaID,
		CommuneID:   req.CommuneID,
		Items:       []SubmittedItem{{ProductID: req.ProductID, Quantity: req.Quantity}},
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, map[string]string{"order_id": id})
}

type validateRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	WilayaID    int    `json:"wilaya_id"`
	CommuneID   int    `json:"commune_id"`
	Items       []struct {
		ProductID string            `json:"product_id"`
		Quantity  int               `json:"quantity"`
		Options   map[string]string `json:"options"`
	} `json:"items"`
}

// validateCart splits the cart into one order per distinct seller, in the
// order sellers first appear, and returns every minted id.
func (s *Server) validateCart(w http.ResponseWriter, r *http.Request) {
	if !authorized(r) {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}
	if req.FullName == "" || req.PhoneNumber == "" || req.Address == "" {
		respondError(w, http.StatusUnprocessableEntity, "missing customer details")
		return
	}

	storeOrder := make([]string, 0)
	byStore := make(map[string][]SubmittedItem)
	for _, item := range req.Items {
		storeID := supplierForProduct(item.ProductID)
		if _, seen := byStore[storeID]; !seen {
			storeOrder = append(storeOrder, storeID)
		}
		byStore[storeID] = append(byStore[storeID], SubmittedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ids := make([]string, 0, len(storeOrder))
	for _, storeID := range storeOrder {
		id := s.mintOrderID()
		s.mu.Lock()
		s.Orders[id] = SubmittedOrder{
			StoreID:     storeID,
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			WilayaID:    req.WilayaID,
			CommuneID:   req.CommuneID,
			Items:       byStore[storeID],
		}
		s.mu.Unlock()
		ids = append(ids, id)
	}

	respondJSON(w, http.StatusCreated, map[string]any{"order_ids": ids})
}

type savedRequest struct {
	ProductID string `json:"product_id"`
}

func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request) {
	if !authorized(r) {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	var req savedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.saved[req.ProductID] = true
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unsaveProduct(w http.ResponseWriter, r *http.Request) {
	if !authorized(r) {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	var req savedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	delete(s.saved, req.ProductID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// IsSaved reports fixture saved state, for assertions in tests.
func (s *Server) IsSaved(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[productID]
}
