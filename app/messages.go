package app

import (
	"fmt"
	"time"

	"github.com/waznabudget/masarifbot/core/telegram/format"
	"github.com/waznabudget/masarifbot/members"
)

// User-facing Arabic texts. Member-entered values are escaped before being
// interpolated into Markdown messages.

const (
	msgPendingNotice = `⏳ *طلبك قيد المراجعة*

تم استلام طلب التسجيل وهو بانتظار موافقة المشرف.

سنخبرك فور صدور القرار.`

	msgSubmitted = `✅ *تم إرسال طلبك!*

شكراً لإكمال التسجيل. تم إرسال بياناتك إلى المشرف للمراجعة.

سنخبرك فور الموافقة على طلبك.`

	msgAlreadyRegistered = `ℹ️ لديك طلب تسجيل مسجّل بالفعل.

إذا كان طلبك قيد المراجعة فسنخبرك فور صدور القرار.`

	msgApprovedNotify = `🎉 *مبروك! تمت الموافقة على طلبك*

أصبح بإمكانك الآن استخدام نظام إدارة ميزانية الأسرة.

اضغط على الزر أدناه للبدء:`

	msgRejectedNotify = `😔 *نعتذر، لم تتم الموافقة على طلبك*

يمكنك التسجيل من جديد بالأمر /start إذا كنت تعتقد أن هناك خطأ في البيانات.`

	msgRegisterInvite = `👋 أهلاً بك!

هذا البوت خاص بأفراد الأسرة. للوصول إلى نظام الميزانية يرجى التسجيل أولاً.

اضغط على الزر أدناه لبدء التسجيل:`

	msgNoDialogue = `ℹ️ لا يوجد تسجيل جارٍ حالياً.

ابدأ بالأمر /start`

	msgUnknownText = `🤔 لم أفهم هذه الرسالة.

استخدم /help لعرض الأوامر المتاحة.`

	msgWebAppError = `❌ عذراً، حدث خطأ في معالجة البيانات.`

	msgNoPending = `✅ لا توجد طلبات تسجيل بانتظار المراجعة.`

	msgSubmitError = `❌ عذراً، حدث خطأ أثناء حفظ التسجيل.

يرجى المحاولة من جديد بالأمر /start`

	msgHelp = `📖 *دليل استخدام البوت*

🔹 *الأوامر المتاحة:*

/start - بدء البوت والتسجيل
/budget - فتح نظام الميزانية
/help - عرض المساعدة

📱 *كيفية الاستخدام:*

1. سجّل بياناتك عبر /start
2. انتظر موافقة المشرف
3. اضغط على /budget ثم زر "فتح النظام"
4. أدخل بيانات الدخل والمصاريف
5. شاهد التحليل التلقائي

💡 البيانات تُحفظ في جهازك فقط`

	msgBudget = `💰 *نظام إدارة ميزانية الأسرة*

📝 الخدمات المتوفرة:

1️⃣ *مصادر الدخل*
   • تسجيل جميع مصادر الدخل
   • حساب المجاميع تلقائياً

2️⃣ *ميزانية الأسرة*
   • تسجيل جميع المصاريف
   • تصنيف دقيق للمصروفات

3️⃣ *تحليل موقف الأسرة*
   • تقييم الوضع المالي
   • نصائح للتطوير

اضغط على الزر لفتح النظام:`
)

func msgWelcome(firstName string) string {
	return fmt.Sprintf(`السلام عليكم %s! 👋

🎯 *مرحباً بك في بوت وزنة مصاريف*

نظام ذكي لإدارة ميزانية أسرتك

✅ تسجيل الدخل والمصاريف
✅ تحليل تلقائي للموقف المالي
✅ تصدير التقارير PDF
✅ واجهة عربية جميلة

اضغط على الزر أدناه للبدء:`, format.EscapeMarkdown(firstName))
}

// reviewCard renders the moderator's decision card for a pending member.
func reviewCard(m *members.Member) string {
	return fmt.Sprintf(`🔔 *طلب تسجيل جديد*

👤 الاسم: %s
👨‍👩‍👧‍👦 رب الأسرة: %s
📞 الهاتف: %s
💬 واتساب: %s
🆔 المعرف: `+"`%d`"+`
⏰ وقت التسجيل: %s`,
		format.EscapeMarkdown(m.FullName),
		format.EscapeMarkdown(m.FamilyHead),
		format.EscapeMarkdown(m.Phone),
		format.EscapeMarkdown(m.WhatsApp),
		m.TelegramID,
		m.RegisteredAt.Format("2006-01-02 15:04"),
	)
}

func decidedCard(card, verdict string, decidedAt time.Time) string {
	return fmt.Sprintf("%s\n\n%s (%s)", card, verdict, decidedAt.Format("2006-01-02 15:04"))
}
