package cartstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vybewear/vybe-backend/internal/cart"
)

// RemoteStore proxies cart operations to the API for a signed-in user.
// Every call returns the server's view, so the local state can never
// drift from the account cart.
type RemoteStore struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewRemoteStore(baseURL, token string) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type cartEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Cart    cart.View `json:"cart"`
}

func (s *RemoteStore) do(method, path string, body any) (cart.View, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return cart.View{}, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return cart.View{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return cart.View{}, err
	}
	defer resp.Body.Close()

	var envelope cartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return cart.View{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return cart.View{}, cart.ErrItemNotFound
	}
	if !envelope.Success {
		return cart.View{}, fmt.Errorf("cart request failed: %s", envelope.Message)
	}
	return envelope.Cart, nil
}

func (s *RemoteStore) Items() ([]cart.Item, error) {
	view, err := s.do(http.MethodGet, "/api/cart", nil)
	if err != nil {
		return nil, err
	}
	return view.Items, nil
}

func (s *RemoteStore) Totals() (cart.View, error) {
	return s.do(http.MethodGet, "/api/cart", nil)
}

type addPayload struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (s *RemoteStore) Add(item cart.Item) error {
	_, err := s.do(http.MethodPost, "/api/cart/add", addPayload{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
	})
	return err
}

func (s *RemoteStore) SetQuantity(itemID string, quantity int) error {
	_, err := s.do(http.MethodPut, "/api/cart/update/"+itemID, map[string]int{"quantity": quantity})
	return err
}

func (s *RemoteStore) Remove(itemID string) error {
	_, err := s.do(http.MethodDelete, "/api/cart/remove/"+itemID, nil)
	return err
}

func (s *RemoteStore) Clear() error {
	_, err := s.do(http.MethodDelete, "/api/cart/clear", nil)
	return err
}
