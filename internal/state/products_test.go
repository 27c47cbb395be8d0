package state_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"vitrin/internal/api"
	"vitrin/internal/state"
)

func newStore(t *testing.T, h http.HandlerFunc) (*state.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return state.New(api.New(srv.URL)), srv
}

func productsJSON(t *testing.T, titles ...string) []byte {
	t.Helper()
	type p struct {
		ID    int     `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	out := struct {
		Products []p `json:"products"`
		Total    int `json:"total"`
	}{Total: len(titles)}
	for i, title := range titles {
		out.Products = append(out.Products, p{ID: i + 1, Title: title, Price: 10})
	}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFetchProductsReplacesWholesale(t *testing.T) {
	var calls atomic.Int32
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write(productsJSON(t, "one", "two", "three"))
		} else {
			w.Write(productsJSON(t, "four"))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	st := s.Products()
	if st.Status != state.StatusSucceeded || len(st.Products) != 3 || st.Total != 3 {
		t.Fatalf("first fetch: %+v", st)
	}

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	st = s.Products()
	if len(st.Products) != 1 || st.Products[0].Title != "four" {
		t.Fatalf("second fetch must replace, not merge: %+v", st.Products)
	}
}

func TestFailedFetchKeepsPreviousCollection(t *testing.T) {
	var calls atomic.Int32
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write(productsJSON(t, "keep-me"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err == nil {
		t.Fatal("want error from failed fetch")
	}

	st := s.Products()
	if st.Status != state.StatusFailed {
		t.Fatalf("status = %s, want failed", st.Status)
	}
	if st.Error != "boom" {
		t.Fatalf("error = %q, want server message", st.Error)
	}
	if len(st.Products) != 1 || st.Products[0].Title != "keep-me" {
		t.Fatalf("stale data must stay visible, got %+v", st.Products)
	}
}

func TestNetworkFailureBecomesFailureState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	s := state.New(api.New(srv.URL))

	err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10})
	if err == nil {
		t.Fatal("want error")
	}
	if !api.IsNetwork(err) {
		t.Fatalf("want network kind, got %v", err)
	}
	st := s.Products()
	if st.Status != state.StatusFailed || st.Error == "" {
		t.Fatalf("network failures convert to failure state, got %+v", st)
	}
}

func TestAddProductAppendsConfirmedRecord(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			w.Write(productsJSON(t, "existing"))
		case "/products/add":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":42,"title":"new thing","price":9.99}`))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddProduct(context.Background(), "new thing", 9.99); err != nil {
		t.Fatal(err)
	}

	st := s.Products()
	if len(st.Products) != 2 {
		t.Fatalf("want 2 products, got %d", len(st.Products))
	}
	added := st.Products[1]
	if added.ID != 42 || added.Title != "new thing" {
		t.Fatalf("appended record should be the server echo, got %+v", added)
	}
}

func TestUpdateProductReplacesById(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products":
			w.Write(productsJSON(t, "one", "two"))
		case r.Method == http.MethodPut:
			w.Write([]byte(`{"id":2,"title":"renamed","price":7.5}`))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateProduct(context.Background(), 2, "renamed", 7.5); err != nil {
		t.Fatal(err)
	}

	st := s.Products()
	if st.Products[1].Title != "renamed" || st.Products[1].Price != 7.5 {
		t.Fatalf("record not replaced in place: %+v", st.Products[1])
	}
	if st.Products[0].Title != "one" {
		t.Fatalf("other records must be untouched: %+v", st.Products[0])
	}
}

func TestUpdateUnloadedProductIsNoOp(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products":
			w.Write(productsJSON(t, "one", "two"))
		case r.Method == http.MethodPut:
			// id 7 exists server-side but is not on the loaded page
			w.Write([]byte(`{"id":7,"title":"elsewhere","price":9.99}`))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateProduct(context.Background(), 7, "elsewhere", 9.99); err != nil {
		t.Fatal(err)
	}

	st := s.Products()
	if len(st.Products) != 2 {
		t.Fatalf("collection size changed: %d", len(st.Products))
	}
	for _, p := range st.Products {
		if p.ID == 7 {
			t.Fatalf("no-op update must not insert: %+v", st.Products)
		}
	}
}

func TestDeleteProductFiltersById(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products":
			w.Write(productsJSON(t, "one", "two", "three"))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"id":2,"isDeleted":true}`))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteProduct(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	st := s.Products()
	if len(st.Products) != 2 {
		t.Fatalf("want 2 after delete, got %d", len(st.Products))
	}
	for _, p := range st.Products {
		if p.ID == 2 {
			t.Fatal("ghost entry after delete")
		}
	}
}

func TestRejectedMutationLeavesCollectionUnchanged(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/products":
			w.Write(productsJSON(t, "one"))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"nope"}`))
		}
	})

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddProduct(context.Background(), "x", 1); err == nil {
		t.Fatal("want rejection")
	}

	st := s.Products()
	if len(st.Products) != 1 {
		t.Fatalf("rejected add must not change the collection: %+v", st.Products)
	}
	if st.Status != state.StatusFailed || st.Error != "nope" {
		t.Fatalf("failure not recorded: %+v", st)
	}
}

func TestNotifierFiresOnConfiguredStatusOnly(t *testing.T) {
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad"}`))
	})

	var mu sync.Mutex
	var fired []state.Action
	s.Subscribe(state.NewNotifier(map[int]state.NotifyFunc{
		400: func(a state.Action) {
			mu.Lock()
			fired = append(fired, a)
			mu.Unlock()
		},
	}).Observe)

	_ = s.FetchProducts(context.Background(), api.ListQuery{Limit: 10})

	mu.Lock()
	defer mu.Unlock()
	// Pending carries no status; only the rejected action matches 400.
	if len(fired) != 1 {
		t.Fatalf("want exactly one notification, got %d", len(fired))
	}
	if fired[0].Type != state.ProductsFetchRejected || fired[0].HTTPStatus != 400 {
		t.Fatalf("unexpected action: %+v", fired[0])
	}
}

func TestOvertakenFetchResponseIsDropped(t *testing.T) {
	block := make(chan struct{})
	var calls atomic.Int32
	s, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-block // hold the first response until the second finished
			w.Write(productsJSON(t, "stale"))
			return
		}
		w.Write(productsJSON(t, "fresh"))
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.FetchProducts(context.Background(), api.ListQuery{Limit: 10})
	}()
	// Wait until the first request is in flight.
	for calls.Load() == 0 {
		runtime.Gosched()
	}

	if err := s.FetchProducts(context.Background(), api.ListQuery{Limit: 10}); err != nil {
		t.Fatal(err)
	}
	close(block)
	wg.Wait()

	st := s.Products()
	if len(st.Products) != 1 || st.Products[0].Title != "fresh" {
		t.Fatalf("stale response clobbered newer data: %+v", st.Products)
	}
	if st.Status != state.StatusSucceeded {
		t.Fatalf("status = %s", st.Status)
	}
}
