package sections

// Fallback values substituted when a section document omits a field.
const (
	DefaultSiteTitle        = "Dịch Vụ Xe 7 Chỗ"
	DefaultLogoLink         = "#"
	DefaultLogoText         = "Logo"
	DefaultHeroBackground   = "images/hero-bg-placeholder.jpg"
	DefaultHeroTitle        = "Tiêu đề mặc định"
	DefaultCTALink          = "#"
	DefaultCTAText          = "Nút CTA"
	DefaultAboutTitle       = "Giới thiệu"
	DefaultNoImages         = "Không có hình ảnh để hiển thị"
	DefaultAutoplayDelayMS  = 3000
	DefaultPricingTitle     = "Bảng giá"
	DefaultContactTitle     = "Liên hệ"
	DefaultSubmitButtonText = "Gửi"
	DefaultSocialLink       = "#"
)

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
