package adapters

import (
	"fmt"
	"net"
	"net/url"
)

// lookupIPFunc はホスト名を解決する関数です。テストでは差し替えます。
type lookupIPFunc func(host string) ([]net.IP, error)

// checkURL は SSRF 対策として素材 URL を検証します。
// http(s) 以外のスキームと、解決結果にプライベート・ループバック・リンクローカル・未指定アドレスを含む URL を拒否します。
func checkURL(rawURL string, lookup lookupIPFunc) error {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := lookup(host)
		if err != nil {
			return fmt.Errorf("名前解決失敗: %w", err)
		}
		ips = resolved
	}

	if len(ips) == 0 {
		return fmt.Errorf("IPが見つかりません: %s", host)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}
	return nil
}
