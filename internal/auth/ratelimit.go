package auth

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitante struct {
	limiter *rate.Limiter
	visto   time.Time
}

// LimitadorLogin limita tentativas de login por IP.
type LimitadorLogin struct {
	mu         sync.Mutex
	visitantes map[string]*visitante
	limite     rate.Limit
	rajada     int
}

// NovoLimitadorLogin aceita porMinuto tentativas por IP (rajada igual ao limite).
func NovoLimitadorLogin(porMinuto int) *LimitadorLogin {
	if porMinuto <= 0 {
		porMinuto = 20
	}
	return &LimitadorLogin{
		visitantes: map[string]*visitante{},
		limite:     rate.Every(time.Minute / time.Duration(porMinuto)),
		rajada:     porMinuto,
	}
}

func (l *LimitadorLogin) permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitantes[ip]
	if !ok {
		v = &visitante{limiter: rate.NewLimiter(l.limite, l.rajada)}
		l.visitantes[ip] = v
	}
	v.visto = now

	// limpeza preguiçosa de IPs parados
	for k, o := range l.visitantes {
		if now.Sub(o.visto) > 10*time.Minute {
			delete(l.visitantes, k)
		}
	}
	return v.limiter.Allow()
}

func (l *LimitadorLogin) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.permitir(ip) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "muitas tentativas de login, tente novamente em instantes", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
