package sqlite

import (
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// seedEntries is the builtin classification list applied on first open.
// It covers common vendor and carrier packages so a fresh install renders
// something more useful than a wall of Expert badges; AI advice write-backs
// refine and extend it over time.
var seedEntries = []ports.CatalogEntry{
	{PackageID: "com.android.chrome", Name: "Chrome", Category: domain.CategorySafe,
		Description: "Web browser; replaceable by any other browser."},
	{PackageID: "com.android.egg", Name: "Easter Egg", Category: domain.CategorySafe,
		Description: "Hidden OS easter egg, purely cosmetic."},
	{PackageID: "com.android.stk", Name: "SIM Toolkit", Category: domain.CategoryExpert,
		Description: "Carrier SIM menu; needed by some operators."},
	{PackageID: "com.android.providers.contacts", Name: "Contacts Storage", Category: domain.CategoryDangerous,
		Description: "Backing store for all contacts; removal breaks dialer and sync."},
	{PackageID: "com.android.systemui", Name: "System UI", Category: domain.CategoryDangerous,
		Description: "Status bar, navigation, recents; the device is unusable without it."},
	{PackageID: "com.facebook.appmanager", Name: "Facebook App Manager", Category: domain.CategorySafe,
		Description: "Preinstalled Facebook updater, not required by the OS."},
	{PackageID: "com.facebook.services", Name: "Facebook Services", Category: domain.CategorySafe,
		Description: "Preinstalled Facebook background services."},
	{PackageID: "com.facebook.system", Name: "Facebook System", Category: domain.CategorySafe,
		Description: "Preinstalled Facebook installer stub."},
	{PackageID: "com.google.android.apps.docs", Name: "Google Drive", Category: domain.CategorySafe,
		Description: "Cloud storage client."},
	{PackageID: "com.google.android.apps.maps", Name: "Google Maps", Category: domain.CategoryCaution,
		Description: "Navigation; some apps depend on it for map intents."},
	{PackageID: "com.google.android.apps.tachyon", Name: "Google Meet", Category: domain.CategorySafe,
		Description: "Video calling app."},
	{PackageID: "com.google.android.apps.wellbeing", Name: "Digital Wellbeing", Category: domain.CategorySafe,
		Description: "Screen time tracking."},
	{PackageID: "com.google.android.feedback", Name: "Market Feedback Agent", Category: domain.CategorySafe,
		Description: "Crash report uploader for Play."},
	{PackageID: "com.google.android.gms", Name: "Google Play Services", Category: domain.CategoryDangerous,
		Description: "Push, auth, location for most apps; removal breaks large parts of the ecosystem."},
	{PackageID: "com.google.android.googlequicksearchbox", Name: "Google App", Category: domain.CategoryCaution,
		Description: "Search and assistant; some launchers embed its widgets."},
	{PackageID: "com.google.android.music", Name: "Google Play Music", Category: domain.CategorySafe,
		Description: "Discontinued music player."},
	{PackageID: "com.google.android.videos", Name: "Google TV", Category: domain.CategorySafe,
		Description: "Movie storefront."},
	{PackageID: "com.google.android.youtube", Name: "YouTube", Category: domain.CategorySafe,
		Description: "Video app; reinstallable from Play."},
	{PackageID: "com.miui.analytics", Name: "MIUI Analytics", Category: domain.CategorySafe,
		Description: "Vendor usage analytics."},
	{PackageID: "com.miui.msa.global", Name: "MIUI System Ads", Category: domain.CategorySafe,
		Description: "Vendor ad delivery service."},
	{PackageID: "com.samsung.android.bixby.agent", Name: "Bixby Voice", Category: domain.CategorySafe,
		Description: "Vendor assistant; safe to remove if unused."},
	{PackageID: "com.samsung.android.game.gamehome", Name: "Game Launcher", Category: domain.CategorySafe,
		Description: "Vendor game hub."},
	{PackageID: "com.samsung.android.scloud", Name: "Samsung Cloud", Category: domain.CategoryCaution,
		Description: "Vendor backup; removing disables cloud restore."},
	{PackageID: "com.sec.android.app.sbrowser", Name: "Samsung Internet", Category: domain.CategorySafe,
		Description: "Vendor browser."},
	{PackageID: "com.wssyncmldm", Name: "Samsung Software Update", Category: domain.CategoryExpert,
		Description: "OTA update agent; removal blocks system updates."},
}
